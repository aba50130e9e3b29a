/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package manager

import (
	"context"
	"fmt"
	"strings"

	perrors "github.com/pkg/errors"
	v1core "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	v1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray/arrays"
)

// Expected Secret data key holding the array API token.
const APITokenKey = "api-token"

// GetAPITokenFromSecret extracts the array API token from the given secret.
func GetAPITokenFromSecret(secret *v1core.Secret) (string, error) {
	token := string(secret.Data[APITokenKey])
	if token == "" {
		return "", NewClientError(fmt.Sprintf("%q must be provided in the endpoint secret", APITokenKey))
	}

	return strings.TrimSpace(token), nil
}

// BuildArrayClient authenticates against the array referenced by the
// StorageArray resource in the given namespace and stores the resulting
// client for use by the other controllers.
func (m *StorageManager) BuildArrayClient(namespace string) (*flasharray.Client, error) {
	arrayList := &v1.StorageArrayList{}
	opts := client.ListOptions{}
	opts.Namespace = namespace
	err := m.GetClient().List(context.TODO(), arrayList, &opts)
	if err != nil {
		err = perrors.Wrap(err, "failed to query storage array list")
		return nil, err
	}

	if len(arrayList.Items) == 0 {
		return nil, NewClientError(fmt.Sprintf("no StorageArray resource defined in namespace %q", namespace))
	}

	// One array is managed per namespace.
	spec := &arrayList.Items[0].Spec

	secret := &v1core.Secret{}
	secretName := types.NamespacedName{Namespace: namespace, Name: spec.Secret}

	// Lookup the array endpoint secret for this namespace
	err = m.GetClient().Get(context.TODO(), secretName, secret)
	if err != nil {
		err = perrors.Wrap(err, "failed to find array endpoint secret")
		return nil, err
	}

	token, err := GetAPITokenFromSecret(secret)
	if err != nil {
		return nil, err
	}

	clientOpts := flasharray.ClientOpts{
		Endpoint: spec.Endpoint,
		APIToken: token,
	}
	if spec.InsecureTLS != nil {
		clientOpts.InsecureTLS = *spec.InsecureTLS
	}
	if spec.RESTVersion != nil {
		clientOpts.RequestedVersion = *spec.RESTVersion
	}

	c, err := flasharray.NewClient(context.TODO(), clientOpts)
	if err != nil {
		if strings.Contains(err.Error(), HTTPSNotEnabled) && strings.HasPrefix(clientOpts.Endpoint, HTTPSPrefix) {
			// The endpoint has been switched to HTTP mode so automatically
			// update our endpoint to HTTP so that we can continue.
			clientOpts.Endpoint = strings.Replace(clientOpts.Endpoint, HTTPSPrefix, HTTPPrefix, 1)
			log.Info("retrying login request with HTTPS disabled")
			c, err = flasharray.NewClient(context.TODO(), clientOpts)
		}

		if err != nil {
			return nil, perrors.Wrap(err, "failed to authenticate against the array")
		}
	}

	// Test the client because the login endpoint does not exercise the
	// resource endpoints therefore there is no guarantee that it works.
	_, err = arrays.Get(context.TODO(), c)
	if err != nil {
		err = perrors.Wrap(err, "failed to test array client connection")
		return nil, err
	}

	m.SetArrayClient(namespace, c)

	return c, nil
}
