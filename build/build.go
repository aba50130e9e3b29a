/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"regexp"

	"github.com/ghodss/yaml"
	perrors "github.com/pkg/errors"
	v1 "k8s.io/api/core/v1"
	v12 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	utils "github.com/pure-storage/flasharray-deployment-manager/common"
	"github.com/pure-storage/flasharray-deployment-manager/controllers/manager"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/certificates"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/networkinterfaces"
	v1info "github.com/pure-storage/flasharray-deployment-manager/platform"
)

const yamlSeparator = "---\n"

// Environment variables consulted when building the endpoint secret.  These
// match the conventions used by the other FlashArray management tooling.
const (
	EndpointEnv = "PUREFA_URL"
	APITokenEnv = "PUREFA_API"
)

// apiVersionString is the API group/version stamped onto each generated
// custom resource.
var apiVersionString = flasharrayv1.GroupVersion.String()

// Builder is the deployment builder interface which exists to allow easier
// mocking for unit test development.
type Builder interface {
	Build() (*Deployment, error)
	AddArrayFilters(filters []ArrayFilter)
	AddResourceFilters(filters []ResourceFilter)
}

// DeploymentBuilder is the concrete implementation of the builder interface
// which is capable of building a full deployment model based on a running
// array.
type DeploymentBuilder struct {
	client          *flasharray.Client
	namespace       string
	name            string
	progressWriter  io.Writer
	arrayFilters    []ArrayFilter
	resourceFilters []ResourceFilter
}

// NewDeploymentBuilder returns an instantiation of a deployment builder
// structure.
func NewDeploymentBuilder(client *flasharray.Client, namespace string, name string, progressWriter io.Writer) *DeploymentBuilder {
	return &DeploymentBuilder{
		client:         client,
		namespace:      namespace,
		name:           name,
		progressWriter: progressWriter}
}

// Deployment defines the structure used to store all of the details of an
// array deployment.  It includes the standard kubernetes objects as well as
// all of the CRD objects required to represent a full running array.
type Deployment struct {
	Namespace         v1.Namespace
	Secrets           []*v1.Secret
	IncompleteSecrets []*v1.Secret
	StorageArray      flasharrayv1.StorageArray
	VolumeGroups      []*flasharrayv1.VolumeGroup
	Pods              []*flasharrayv1.Pod
	HostGroups        []*flasharrayv1.HostGroup
	ProtectionGroups  []*flasharrayv1.ProtectionGroup
	NetworkInterfaces []*flasharrayv1.NetworkInterface
	Certificates      []*flasharrayv1.Certificate
	DirectoryServices []*flasharrayv1.DirectoryService
	Realms            []*flasharrayv1.Realm
	FileSystems       []*flasharrayv1.FileSystem
	Workloads         []*flasharrayv1.Workload
}

// progressUpdate is a utility method to write a progress log to the provided
// i/o writer interface.
func (db *DeploymentBuilder) progressUpdate(messagefmt string, args ...interface{}) {
	_, _ = fmt.Fprintf(db.progressWriter, messagefmt, args...)
	// Suppress errors
}

// AddArrayFilters adds a list of array filters to the set already present on
// the deployment builder (if any).
func (db *DeploymentBuilder) AddArrayFilters(filters []ArrayFilter) {
	db.arrayFilters = append(db.arrayFilters, filters...)
}

// AddResourceFilters adds a list of resource filters to the set already
// present on the deployment builder (if any).
func (db *DeploymentBuilder) AddResourceFilters(filters []ResourceFilter) {
	db.resourceFilters = append(db.resourceFilters, filters...)
}

// Build is the main method which produces a deployment object based on a
// running array.
func (db *DeploymentBuilder) Build() (*Deployment, error) {
	deployment := Deployment{}

	db.progressUpdate("building deployment for array %q in namespace %q\n", db.name, db.namespace)

	db.progressUpdate("collecting array configuration snapshot\n")

	info := v1info.ArrayInfo{}
	err := info.PopulateArrayInfo(context.TODO(), db.client)
	if err != nil {
		return nil, err
	}

	db.progressUpdate("building namespace configuration\n")

	db.buildNamespace(&deployment)

	db.progressUpdate("building storage array configuration\n")

	err = db.buildStorageArray(&deployment, &info)
	if err != nil {
		return nil, err
	}

	db.progressUpdate("building array endpoint secret configuration\n")

	db.buildEndpointSecret(&deployment)

	db.progressUpdate("building resource configurations\n")

	db.buildVolumeGroups(&deployment, &info)
	db.buildPods(&deployment, &info)
	db.buildHostGroups(&deployment, &info)
	db.buildProtectionGroups(&deployment, &info)
	db.buildNetworkInterfaces(&deployment, &info)
	db.buildCertificates(&deployment, &info)
	db.buildDirectoryServices(&deployment, &info)
	db.buildRealms(&deployment, &info)
	db.buildFileSystems(&deployment, &info)
	db.buildWorkloads(&deployment, &info)

	db.progressUpdate("...filtering resource attributes\n")

	for _, f := range db.resourceFilters {
		if err := f.Filter(&info, &deployment); err != nil {
			return nil, err
		}
	}

	return &deployment, nil
}

// removeStatusFields is a utility function that removes any "status"
// attributes from the final deployment yaml.  The final deployment yaml is
// intended to be used as input to provision a new array and so all fields
// that would be rejected by the kubernetes API must be removed prior to use.
func removeStatusFields(a string) string {
	re := regexp.MustCompile("(?ms)^status.*?^(---|$)")
	return re.ReplaceAllString(a, "$1")
}

// removeCreationTimestamp is a utility function that removes the creation
// timestamp attribute from the final deployment yaml.
func removeCreationTimestamp(a string) string {
	re := regexp.MustCompile("(?m)^.*?creationTimestamp:.*?$[\r\n]")
	return re.ReplaceAllString(a, "")
}

// ToYAML is a utility method to publish the array deployment instance as a
// YAML document.  Each distinct resource within the document will be
// separated by a "---" line.
func (d *Deployment) ToYAML() (string, error) {
	var b bytes.Buffer

	b.Write([]byte(yamlSeparator))

	objects := []interface{}{d.Namespace}
	for _, s := range d.Secrets {
		objects = append(objects, s)
	}
	for _, s := range d.IncompleteSecrets {
		objects = append(objects, s)
	}
	objects = append(objects, d.StorageArray)
	for _, r := range d.NetworkInterfaces {
		objects = append(objects, r)
	}
	for _, r := range d.Certificates {
		objects = append(objects, r)
	}
	for _, r := range d.DirectoryServices {
		objects = append(objects, r)
	}
	for _, r := range d.Realms {
		objects = append(objects, r)
	}
	for _, r := range d.Pods {
		objects = append(objects, r)
	}
	for _, r := range d.VolumeGroups {
		objects = append(objects, r)
	}
	for _, r := range d.FileSystems {
		objects = append(objects, r)
	}
	for _, r := range d.HostGroups {
		objects = append(objects, r)
	}
	for _, r := range d.ProtectionGroups {
		objects = append(objects, r)
	}
	for _, r := range d.Workloads {
		objects = append(objects, r)
	}

	for _, o := range objects {
		buf, err := yaml.Marshal(o)
		if err != nil {
			return "", perrors.Wrap(err, "failed to render resource to YAML")
		}

		b.Write(buf)
		b.Write([]byte(yamlSeparator))
	}

	return removeCreationTimestamp(removeStatusFields(b.String())), nil
}

func (db *DeploymentBuilder) buildNamespace(d *Deployment) {
	d.Namespace = v1.Namespace{
		TypeMeta: v12.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: v12.ObjectMeta{
			Name: db.namespace,
		},
	}
}

func (db *DeploymentBuilder) buildStorageArray(d *Deployment, info *v1info.ArrayInfo) error {
	array := flasharrayv1.StorageArray{
		TypeMeta: v12.TypeMeta{
			APIVersion: apiVersionString,
			Kind:       "StorageArray",
		},
		ObjectMeta: v12.ObjectMeta{
			Name:      db.name,
			Namespace: db.namespace,
		},
		Spec: flasharrayv1.StorageArraySpec{
			Endpoint: db.client.Endpoint,
			Secret:   fmt.Sprintf("%s-api-token", db.name),
		},
	}

	// Exported deployments are expected to target arrays with self managed
	// certificates unless a filter decides otherwise.
	array.Spec.InsecureTLS = ptr.To(true)

	for _, f := range db.arrayFilters {
		if err := f.Filter(&array, info, d); err != nil {
			return err
		}
	}

	array.DeepCopyInto(&d.StorageArray)

	return nil
}

// NewEndpointSecretFromEnv builds the array endpoint secret from the
// conventional environment variables.  The token value may be blank in which
// case the secret must be completed by hand before being applied.
func NewEndpointSecretFromEnv(name string, namespace string) *v1.Secret {
	return &v1.Secret{
		TypeMeta: v12.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: v12.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Type: v1.SecretTypeOpaque,
		Data: map[string][]byte{
			manager.APITokenKey: []byte(os.Getenv(APITokenEnv)),
		},
	}
}

func (db *DeploymentBuilder) buildEndpointSecret(d *Deployment) {
	secret := NewEndpointSecretFromEnv(d.StorageArray.Spec.Secret, db.namespace)
	d.Secrets = append(d.Secrets, secret)
}

func (db *DeploymentBuilder) buildVolumeGroups(d *Deployment, info *v1info.ArrayInfo) {
	for _, group := range info.VolumeGroups {
		resource := &flasharrayv1.VolumeGroup{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "VolumeGroup",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      group.Name,
				Namespace: db.namespace,
			},
		}

		if group.QoS.BandwidthLimit != nil && *group.QoS.BandwidthLimit != 0 {
			limit := utils.FormatSize(*group.QoS.BandwidthLimit)
			resource.Spec.BandwidthLimit = &limit
		}
		if group.QoS.IopsLimit != nil && *group.QoS.IopsLimit != 0 {
			limit := utils.FormatIOPS(*group.QoS.IopsLimit)
			resource.Spec.IOPSLimit = &limit
		}
		if group.PriorityAdjustment.Operator != "" {
			operator := group.PriorityAdjustment.Operator
			value := group.PriorityAdjustment.Value
			resource.Spec.PriorityOperator = &operator
			resource.Spec.PriorityValue = &value
		}

		d.VolumeGroups = append(d.VolumeGroups, resource)
	}
}

func (db *DeploymentBuilder) buildPods(d *Deployment, info *v1info.ArrayInfo) {
	for _, pod := range info.Pods {
		resource := &flasharrayv1.Pod{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "Pod",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      pod.Name,
				Namespace: db.namespace,
			},
		}

		if pod.Mediator != "" {
			mediator := pod.Mediator
			resource.Spec.Mediator = &mediator
		}
		if pod.QuotaLimit != nil && *pod.QuotaLimit != 0 {
			limit := utils.FormatSize(*pod.QuotaLimit)
			resource.Spec.QuotaLimit = &limit
		}
		for _, preference := range pod.FailoverPreferences {
			resource.Spec.FailoverPreference = append(resource.Spec.FailoverPreference, preference.Name)
		}
		for _, member := range pod.Arrays {
			if member.Name != info.Name {
				peer := member.Name
				resource.Spec.StretchArray = &peer
			}
		}

		d.Pods = append(d.Pods, resource)
	}
}

func (db *DeploymentBuilder) buildHostGroups(d *Deployment, info *v1info.ArrayInfo) {
	for _, group := range info.HostGroups {
		resource := &flasharrayv1.HostGroup{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "HostGroup",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      group.Name,
				Namespace: db.namespace,
			},
		}

		resource.Spec.Hosts = group.Hosts
		for _, connection := range group.Connections {
			lun := connection.LUN
			resource.Spec.Volumes = append(resource.Spec.Volumes, flasharrayv1.HostGroupVolumeInfo{
				Name: connection.Volume.Name,
				LUN:  &lun,
			})
		}

		d.HostGroups = append(d.HostGroups, resource)
	}
}

func (db *DeploymentBuilder) buildProtectionGroups(d *Deployment, info *v1info.ArrayInfo) {
	for _, group := range info.ProtectionGroups {
		resource := &flasharrayv1.ProtectionGroup{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "ProtectionGroup",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      group.Name,
				Namespace: db.namespace,
			},
		}

		resource.Spec.Volumes = group.Volumes
		resource.Spec.Hosts = group.Hosts
		resource.Spec.HostGroups = group.HostGroups
		for _, target := range group.Targets {
			resource.Spec.Targets = append(resource.Spec.Targets, target.Name)
		}

		snapshotEnabled := group.SnapshotSchedule.Enabled
		snapshotFrequency := utils.FormatFrequency(group.SnapshotSchedule.Frequency)
		snapshot := flasharrayv1.SnapshotScheduleInfo{
			Enabled:   &snapshotEnabled,
			Frequency: &snapshotFrequency,
		}
		if group.SnapshotSchedule.At != nil {
			at := utils.FormatTimeOfDay(*group.SnapshotSchedule.At)
			snapshot.At = &at
		}
		resource.Spec.SnapshotSchedule = &snapshot

		replicationEnabled := group.ReplicationSchedule.Enabled
		replicationFrequency := utils.FormatFrequency(group.ReplicationSchedule.Frequency)
		replication := flasharrayv1.ReplicationScheduleInfo{
			Enabled:   &replicationEnabled,
			Frequency: &replicationFrequency,
		}
		if group.ReplicationSchedule.At != nil {
			at := utils.FormatTimeOfDay(*group.ReplicationSchedule.At)
			replication.At = &at
		}
		if group.ReplicationSchedule.Blackout != nil {
			replication.Blackout = &flasharrayv1.BlackoutInfo{
				Start: utils.FormatTimeOfDay(group.ReplicationSchedule.Blackout.Start),
				End:   utils.FormatTimeOfDay(group.ReplicationSchedule.Blackout.End),
			}
		}
		resource.Spec.ReplicationSchedule = &replication

		resource.Spec.SourceRetention = exportRetention(group.SourceRetention.AllForSec,
			group.SourceRetention.PerDay, group.SourceRetention.Days)
		resource.Spec.TargetRetention = exportRetention(group.TargetRetention.AllForSec,
			group.TargetRetention.PerDay, group.TargetRetention.Days)

		if group.RetentionLock != "" {
			lock := group.RetentionLock
			resource.Spec.SafeMode = &lock
		}

		d.ProtectionGroups = append(d.ProtectionGroups, resource)
	}
}

func exportRetention(allForSec int64, perDay int32, days int32) *flasharrayv1.RetentionInfo {
	return &flasharrayv1.RetentionInfo{
		AllFor: ptr.To(utils.FormatFrequency(allForSec * 1000)),
		PerDay: ptr.To(perDay),
		Days:   ptr.To(days),
	}
}

// interfaceAddress renders the address assigned to an interface in CIDR
// notation, or "" when no address is assigned.
func interfaceAddress(eth *networkinterfaces.Eth) string {
	if eth == nil || eth.Address == nil {
		return ""
	}
	if eth.Netmask == nil {
		return *eth.Address
	}

	ip := net.ParseIP(*eth.Netmask)
	if ip == nil {
		return *eth.Address
	}

	// IPv4 netmasks parse to a 4 byte mask; IPv6 netmasks keep all 16.
	mask := net.IPMask(ip.To4())
	if mask == nil {
		mask = net.IPMask(ip.To16())
	}
	ones, bits := mask.Size()
	if bits == 0 {
		// Not a canonical prefix mask.
		return *eth.Address
	}

	return fmt.Sprintf("%s/%d", *eth.Address, ones)
}

func (db *DeploymentBuilder) buildNetworkInterfaces(d *Deployment, info *v1info.ArrayInfo) {
	for _, iface := range info.NetworkInterfaces {
		resource := &flasharrayv1.NetworkInterface{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "NetworkInterface",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      iface.Name,
				Namespace: db.namespace,
			},
		}

		enabled := iface.Enabled
		resource.Spec.Enabled = &enabled
		resource.Spec.Services = iface.Services

		if iface.Eth != nil {
			if address := interfaceAddress(iface.Eth); address != "" {
				resource.Spec.Address = &address
			}
			if iface.Eth.Gateway != nil && *iface.Eth.Gateway != "" {
				gateway := *iface.Eth.Gateway
				resource.Spec.Gateway = &gateway
			}
			if iface.Eth.MTU != 0 {
				mtu := iface.Eth.MTU
				resource.Spec.MTU = &mtu
			}
			if iface.Eth.Subtype != "" {
				subtype := iface.Eth.Subtype
				resource.Spec.Subtype = &subtype
			}
			resource.Spec.Subinterfaces = iface.Eth.Subinterfaces
			if iface.Eth.VLAN != nil && *iface.Eth.VLAN != 0 {
				vlan := *iface.Eth.VLAN
				resource.Spec.VLAN = &vlan
			}
		}

		d.NetworkInterfaces = append(d.NetworkInterfaces, resource)
	}
}

func (db *DeploymentBuilder) buildCertificates(d *Deployment, info *v1info.ArrayInfo) {
	for _, cert := range info.Certificates {
		resource := &flasharrayv1.Certificate{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "Certificate",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      cert.Name,
				Namespace: db.namespace,
			},
		}

		if cert.Status == certificates.StatusImported {
			keySecret := fmt.Sprintf("%s-key", cert.Name)
			resource.Spec.Import = &flasharrayv1.CertificateImport{
				Certificate:             cert.Certificate,
				IntermediateCertificate: cert.IntermediateCertificate,
				KeySecret:               &keySecret,
			}

			// Private keys cannot be read back from the array so the
			// secret is emitted as a placeholder to be completed by hand.
			d.IncompleteSecrets = append(d.IncompleteSecrets, NewCertificateKeySecret(keySecret, db.namespace))
		} else {
			generate := flasharrayv1.CertificateGeneration{}
			if cert.CommonName != nil {
				generate.CommonName = *cert.CommonName
			}
			generate.Country = cert.Country
			generate.Email = cert.Email
			generate.Locality = cert.Locality
			generate.Organization = cert.Organization
			generate.OrganizationalUnit = cert.OrganizationalUnit
			generate.Province = cert.State
			if cert.KeySize != 0 {
				keySize := cert.KeySize
				generate.KeySize = &keySize
			}
			resource.Spec.Generate = &generate
		}

		d.Certificates = append(d.Certificates, resource)
	}
}

// NewCertificateKeySecret builds an empty TLS key secret placeholder.
func NewCertificateKeySecret(name string, namespace string) *v1.Secret {
	return &v1.Secret{
		TypeMeta: v12.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: v12.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Type: v1.SecretTypeOpaque,
		Data: map[string][]byte{
			"key":        nil,
			"passphrase": nil,
		},
	}
}

func (db *DeploymentBuilder) buildDirectoryServices(d *Deployment, info *v1info.ArrayInfo) {
	for _, service := range info.DirectoryServices {
		resource := &flasharrayv1.DirectoryService{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "DirectoryService",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      service.Name,
				Namespace: db.namespace,
			},
			Spec: flasharrayv1.DirectoryServiceSpec{
				Role: service.Name,
			},
		}

		enabled := service.Enabled
		resource.Spec.Enabled = &enabled
		resource.Spec.URIs = service.URIs
		if service.BaseDN != "" {
			baseDN := service.BaseDN
			resource.Spec.BaseDN = &baseDN
		}
		if service.BindUser != "" {
			bindUser := service.BindUser
			resource.Spec.BindUser = &bindUser

			// Bind passwords cannot be read back from the array so the
			// secret is emitted as a placeholder to be completed by hand.
			bindSecret := fmt.Sprintf("%s-bind-password", service.Name)
			resource.Spec.BindPasswordSecret = &bindSecret
			d.IncompleteSecrets = append(d.IncompleteSecrets, NewBindPasswordSecret(bindSecret, db.namespace))
		}
		checkPeer := service.CheckPeer
		resource.Spec.CheckPeer = &checkPeer
		if service.Management != nil {
			if service.Management.UserLoginAttribute != "" {
				attribute := service.Management.UserLoginAttribute
				resource.Spec.UserLoginAttribute = &attribute
			}
			if service.Management.UserObject != "" {
				object := service.Management.UserObject
				resource.Spec.UserObject = &object
			}
		}

		d.DirectoryServices = append(d.DirectoryServices, resource)
	}
}

// NewBindPasswordSecret builds an empty bind password secret placeholder.
func NewBindPasswordSecret(name string, namespace string) *v1.Secret {
	return &v1.Secret{
		TypeMeta: v12.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: v12.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Type: v1.SecretTypeOpaque,
		Data: map[string][]byte{
			"password": nil,
		},
	}
}

func (db *DeploymentBuilder) buildRealms(d *Deployment, info *v1info.ArrayInfo) {
	for _, realm := range info.Realms {
		resource := &flasharrayv1.Realm{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "Realm",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      realm.Name,
				Namespace: db.namespace,
			},
		}

		if realm.QuotaLimit != nil && *realm.QuotaLimit != 0 {
			limit := utils.FormatSize(*realm.QuotaLimit)
			resource.Spec.QuotaLimit = &limit
		}

		d.Realms = append(d.Realms, resource)
	}
}

func (db *DeploymentBuilder) buildFileSystems(d *Deployment, info *v1info.ArrayInfo) {
	for _, fs := range info.FileSystems {
		resource := &flasharrayv1.FileSystem{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "FileSystem",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      fs.Name,
				Namespace: db.namespace,
			},
		}

		d.FileSystems = append(d.FileSystems, resource)
	}
}

func (db *DeploymentBuilder) buildWorkloads(d *Deployment, info *v1info.ArrayInfo) {
	for _, workload := range info.Workloads {
		resource := &flasharrayv1.Workload{
			TypeMeta: v12.TypeMeta{
				APIVersion: apiVersionString,
				Kind:       "Workload",
			},
			ObjectMeta: v12.ObjectMeta{
				Name:      workload.Name,
				Namespace: db.namespace,
			},
			Spec: flasharrayv1.WorkloadSpec{
				Preset: workload.Preset.Name,
			},
		}

		if len(workload.Parameters) > 0 {
			parameters := make(map[string]string, len(workload.Parameters))
			for _, p := range workload.Parameters {
				parameters[p.Name] = p.Value
			}
			resource.Spec.Parameters = parameters
		}

		d.Workloads = append(d.Workloads, resource)
	}
}
