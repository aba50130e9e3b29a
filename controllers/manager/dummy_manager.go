/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package manager

import (
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

// Dummymanager for unit test
type Dummymanager struct {
	arrayClientAvailable bool
	notified             map[string]int

	Client client.Client // Added client field for the Kubernetes client
}

func (m *Dummymanager) ResetArrayClient(namespace string) error {
	m.arrayClientAvailable = false
	return nil
}
func (m *Dummymanager) GetArrayClient(namespace string) *flasharray.Client {
	if m.arrayClientAvailable {
		c := &flasharray.Client{}
		return c
	}
	return nil
}
func (m *Dummymanager) SetArrayClient(namespace string, client *flasharray.Client) {
	m.arrayClientAvailable = client != nil
}
func (m *Dummymanager) GetKubernetesClient() client.Client {
	return m.Client
}
func (m *Dummymanager) BuildArrayClient(namespace string) (*flasharray.Client, error) {
	c := &flasharray.Client{}
	m.arrayClientAvailable = true
	return c, nil
}
func (m *Dummymanager) NotifyArrayDependencies(namespace string) error {
	if m.notified == nil {
		m.notified = make(map[string]int)
	}
	m.notified[namespace]++
	return nil
}
func (m *Dummymanager) NotifyResource(object client.Object) error {
	return nil
}
func (m *Dummymanager) SetArrayReady(namespace string, value bool) {

}
func (m *Dummymanager) GetArrayReady(namespace string) bool {
	return true
}
func (m *Dummymanager) StartMonitor(monitor *Monitor, message string) error {
	return nil
}
func (m *Dummymanager) CancelMonitor(object client.Object) {

}
