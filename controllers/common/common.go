/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package common

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	perrors "github.com/pkg/errors"
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	flasharrayv1 "github.com/pure-storage/flasharray-deployment-manager/api/v1"
	"github.com/pure-storage/flasharray-deployment-manager/controllers/manager"
	"github.com/pure-storage/flasharray-deployment-manager/flasharray"
)

var (
	// RetryImmediate should be used whenever a known transient error is
	// detected and there is a very likely that retrying immediately will
	// succeed.  For example,
	RetryImmediate = reconcile.Result{Requeue: true, RequeueAfter: time.Second}

	// RetryArrayNotReady should be used whenever a controller needs to wait
	// for the storage array controller to finish its reconcile task.  The
	// storage array controller kicks the other controllers when it has
	// finished so there is no need to automatically requeue these events.
	RetryArrayNotReady = reconcile.Result{Requeue: false}

	// RetryMissingClient should be used for any object reconciliation that
	// fails because of the array client is missing or was reset.  The storage
	// array controller is responsible for re-creating the client and it will
	// kick the other controllers once it has re-established a connection to
	// the target array.
	RetryMissingClient = reconcile.Result{Requeue: false}

	// RetryTransientError should be used for any object reconciliation that
	// fails because of a transient error and needs to be re-attempted at a
	// future time.
	RetryTransientError = reconcile.Result{Requeue: true, RequeueAfter: 20 * time.Second}

	// RetryUserError should be used for any errors caught after an API request
	// that is likely due to data validation errors.  These could theoretically
	// not retry and just sit and wait for the user to correct the error, but
	// to mitigate against dependency errors or transient errors we will retry.
	RetryUserError = reconcile.Result{Requeue: true, RequeueAfter: time.Minute}

	// RetryValidationError should be used for any errors resulting from an
	// upfront validation error.  There is no point in trying again since the
	// data is invalid.  Just wait for the user to correct the issue.
	RetryValidationError = reconcile.Result{Requeue: false}

	// RetryServerError should be used for any errors caught after an API
	// request that is likely due to internal server errors.  These could
	// theoretically not retry and just sit and wait for the user to correct the
	// error, but to mitigate against dependency errors or transient errors we
	// will retry.
	RetryServerError = reconcile.Result{Requeue: true, RequeueAfter: time.Minute}

	// RetryResolutionError should be used for any DNS resolution errors.  There
	// is a good chance that these errors will persist for a while until the
	// user intervenes so slow down retry attempts.
	RetryResolutionError = reconcile.Result{Requeue: true, RequeueAfter: 5 * time.Minute}

	// RetryNetworkError should be used for any errors caught after a API
	// request that is likely due to network errors.  This could happen
	// because of a misconfiguration of the endpoint URL or whenever the array
	// becomes temporarily unreachable.  We need to retry until the array
	// becomes reachable.  Since the most likely explanation is a management
	// port failover then it makes sense to keep retrying frequently because
	// it will come back relatively quickly.
	RetryNetworkError = reconcile.Result{Requeue: true, RequeueAfter: 15 * time.Second}

	// RetryVersionDependency should be used whenever a requested configuration
	// depends on a REST version that the array does not support yet.  The
	// array will only report a newer version after an upgrade so slow down
	// retry attempts.
	RetryVersionDependency = reconcile.Result{Requeue: true, RequeueAfter: 5 * time.Minute}

	// RetryNever is used when the reconciler will be triggered by a separate
	// mechanism and no retry is necessary.
	RetryNever = reconcile.Result{Requeue: false}

	// Properties contained on ProtectionGroup resources
	ProtectionGroupProperties = map[string]interface{}{
		"members":             nil,
		"targets":             nil,
		"safeMode":            nil,
		"snapshotSchedule":    []string{"enabled", "frequency", "at"},
		"replicationSchedule": []string{"enabled", "frequency", "at", "blackout"},
		"sourceRetention":     []string{"allFor", "perDay", "days"},
		"targetRetention":     []string{"allFor", "perDay", "days"},
	}

	// Properties contained on NetworkInterface resources
	NetworkInterfaceProperties = map[string]interface{}{
		"enabled":  nil,
		"services": nil,
		"eth":      []string{"address", "netmask", "gateway", "subnet", "subinterfaces"},
		"mtu":      nil,
	}

	// Properties contained on Pod resources
	PodProperties = map[string]interface{}{
		"arrays":              nil,
		"failoverPreferences": nil,
		"mediator":            nil,
		"quotaLimit":          nil,
	}

	// Properties contained on VolumeGroup resources
	VolumeGroupProperties = map[string]interface{}{
		"bandwidthLimit":     nil,
		"iopsLimit":          nil,
		"priorityAdjustment": []string{"operator", "value"},
	}

	// Properties contained on DirectoryService resources
	DirectoryServiceProperties = map[string]interface{}{
		"enabled":     nil,
		"uris":        nil,
		"baseDN":      nil,
		"bindUser":    nil,
		"checkPeer":   nil,
		"certificate": nil,
		"management":  []string{"userLoginAttribute", "userObjectClass"},
	}

	// Properties contained on HostGroup resources
	HostGroupProperties = map[string]interface{}{
		"hosts":   nil,
		"volumes": []string{"name", "lun"},
	}
)

// Constant for processLines and searchParameters when gathering the Delta config
const ParentFound = "parent_found"

// Common event record reasons
const (
	ResourceCreated    = "Created"
	ResourceUpdated    = "Updated"
	ResourceDeleted    = "Deleted"
	ResourceWait       = "Wait"
	ResourceDependency = "Dependency"
)

func FormatStruct(obj interface{}) string {
	buf, _ := json.Marshal(obj)
	return string(buf)
}

func CompareStructs(a, b interface{}) bool {
	bufferA, _ := json.Marshal(a)
	bufferB, _ := json.Marshal(b)
	return string(bufferA) == string(bufferB)
}

// ReconcilerErrorHandler defines the interface type associated to any
// reconciler error handler.
type ReconcilerErrorHandler interface {
	HandleReconcilerError(request reconcile.Request, in error) (reconcile.Result, error)
}

// ErrorHandler is the common implementation of the ReconcilerErrorHandler
// interface.
type ErrorHandler struct {
	logr.Logger
	manager.ArrayManager
}

// HandleReconcilerError is the common error handler implementation for all
// controllers.  It is responsible for looking at the type of error that was
// caught and determine what the best resolution might be.
func (h *ErrorHandler) HandleReconcilerError(request reconcile.Request, in error) (result reconcile.Result, err error) {
	resetClient := true

	// We use wrapped errors throughout the system so make sure we are looking
	// at the initial error before determining what actually went wrong.
	cause := perrors.Cause(in)

	switch cause.(type) {
	case flasharray.ErrDefault400, flasharray.ErrDefault403,
		flasharray.ErrDefault404:
		// These errors are resource based errors.  This means we successfully
		// submitted the request but the array rejected it therefore the client
		// is still valid.  There is likely a problem with the data provided
		// by the user so wait for the user to correct the data.  Retrying is
		// pointless
		resetClient = false
		result = RetryUserError
		err = nil

		h.Error(in, "user error", "request", request)

	case flasharray.ErrDefault500, flasharray.ErrDefault503:
		// These errors are server based errors.  This means we successfully
		// submitted the request but the array encountered an unexpected or
		// unhandled exception
		resetClient = false
		result = RetryServerError
		err = nil

		h.Error(in, "server error", "request", request)

	case flasharray.ErrDefault401, flasharray.ErrAuthenticationFailed:
		// The session is no longer valid.  Reset the client so that the
		// storage array controller re-authenticates against the array.
		result = RetryNetworkError
		err = nil

		h.Error(in, "authentication error", "request", request)

	case *errors.StatusError:
		// These errors are rest client errors from client-go.
		resetClient = false
		err = nil

		if strings.Contains(cause.Error(), "object has been modified") {
			// This is likely a status update conflict so immediately retry.
			result = RetryImmediate
			h.Info("status update conflict", "request", request)
		} else {
			result = RetryTransientError
			h.Error(in, "status error", "request", request)
		}

	case *url.Error:
		// These errors are networking type errors.  We failed to reach or
		// connect to the array.  Reset the client in all cases
		urlError := cause.(*url.Error)

		result = RetryNetworkError
		err = nil

		if opError, ok := urlError.Err.(*net.OpError); ok {
			if _, ok := opError.Err.(*net.DNSError); ok {
				// For this specific error we know that more time will be
				// needed for the user to intervene so use a longer delay.
				result = RetryResolutionError
				h.Error(in, "resolution error", "request")
				break
			}

		} else if strings.Contains(urlError.Error(), manager.HTTPSNotEnabled) {
			h.Info("HTTPS request was sent to an non HTTPS array")

			// The storage array controller will need to deal with this error
			// when it attempts to rebuild the client.
		}

		h.Error(in, "URL error", "request", request)

	case HTTPSClientRequired:
		// These errors are generated when a controller discovers that a
		// change requires that HTTPS be enabled first.
		result = RetryTransientError
		err = nil

		h.Error(in, "HTTPS client required", "request", request)

	case ValidationError, ChangeAfterReconciled:
		// These errors are data validation errors.  There is likely a problem
		// with the data provided by the user so wait for the user to correct
		// the data.  Retrying is pointless.
		resetClient = false
		result = RetryValidationError
		err = nil

		h.Error(in, "validation error", "request", request)

	case ErrVersionDependency, flasharray.ErrVersionNotSupported:
		// The configuration depends on a REST version that the array does
		// not support.  Wait for the array to be upgraded.
		resetClient = false
		result = RetryVersionDependency
		err = nil

		h.Error(in, "version dependency error", "request", request)

	case ErrArrayDependency, ErrResourceStatusDependency:
		// These errors are transient errors.  Resources must be in stable
		// states before reconciling changes therefore we need to wait until
		// they settle before continuing.
		resetClient = false
		result = RetryTransientError
		err = nil

		h.Error(in, "resource status error", "request", request)

	case manager.ClientError, ErrUserDataError,
		flasharrayv1.ErrMissingArrayResource, ErrMissingKubernetesResource:
		// These errors are user data errors.  Usually a reference to a
		// non-existent resource.
		resetClient = false
		result = RetryUserError
		err = nil

		h.Error(in, "user data error", "request", request)

	case manager.WaitForMonitor:
		// These errors are explicit wait states within a reconciler.  If such
		// an error is used then the reconciler wants to stop and wait for its
		// monitor to force a new reconcilable event.
		resetClient = false
		result = RetryNever
		err = nil

		h.Error(in, "waiting for monitor", "request", request)

	default:
		resetClient = false

		if !errors.IsNotFound(cause) {
			h.Error(in, "an unhandled error occurred", "type", reflect.TypeOf(cause))
			result = RetryTransientError
			err = in
		} else {
			// A request to the kubernetes client failed because of a missing
			// resource.  Assume that a user resource is not installed or
			// visible yet and try again.
			result = RetryUserError
			err = nil

			h.Error(in, "missing dependency", "request", request)
		}
	}

	if resetClient {
		if h.ArrayManager.GetArrayClient(request.Namespace) != nil {
			h.Info("resetting array client")
			err2 := h.ArrayManager.ResetArrayClient(request.Namespace)
			if err2 != nil {
				h.Error(err2, "failed to reset array client")
			}
		}
	}

	return result, err
}

// ReconcilerEventLogger is an interface that is intended to allow specialized
// behavior when generating an event.
type ReconcilerEventLogger interface {
	NormalEvent(object runtime.Object, reason string, messageFmt string, args ...interface{})
	WarningEvent(object runtime.Object, reason string, messageFmt string, args ...interface{})
}

// EventLogger is an implementation of a ReconcilerEventLogger.  Its purpose is
// to simultaneously generate a log with every event and to prefix each event
// message with the object name.
type EventLogger struct {
	record.EventRecorder
	logr.Logger
}

// event is a method used to generate a log and an event for a given set of
// message, event type, and reason.
func (in *EventLogger) event(object runtime.Object, eventtype string, logLevel int, reason string, messageFmt string, args ...interface{}) {
	accessor := meta.NewAccessor()
	name, err := accessor.Name(object)
	if err != nil {
		name = "unknown"
	}
	msg := fmt.Sprintf("%s: %s", name, fmt.Sprintf(messageFmt, args...))
	in.Logger.V(logLevel).Info(msg)
	in.EventRecorder.Eventf(object, eventtype, reason, msg)
}

// NormalEvent generates a log and event for a "normal" event.
func (in *EventLogger) NormalEvent(object runtime.Object, reason string, messageFmt string, args ...interface{}) {
	// logLevel is set to the normal level (0) so that we can see these
	// in the log stream rather than having to look at the events.
	in.event(object, v1.EventTypeNormal, 0, reason, messageFmt, args...)
}

// WarningEvent generates a log and event for a "warning" event.  The intent is
// that this should only be used when declaring a reconciler error... all other
// events should use "NormalEvent".
func (in *EventLogger) WarningEvent(object runtime.Object, reason string, messageFmt string, args ...interface{}) {
	// logLevel is set to the debug level (1) because WarningEvent should be
	// accompanied by a reconciler error which has its own log generated.
	in.event(object, v1.EventTypeWarning, 1, reason, messageFmt, args...)
}

func GetDeltaString(spec interface{}, current interface{}, parameters map[string]interface{}) (string, error) {

	specBytes, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}

	currentBytes, err := json.Marshal(current)
	if err != nil {
		return "", err
	}

	var specData map[string]interface{}
	var currentData map[string]interface{}

	err = json.Unmarshal([]byte(specBytes), &specData)
	if err != nil {
		return "", err
	}

	err = json.Unmarshal([]byte(currentBytes), &currentData)
	if err != nil {
		return "", err
	}

	diff := cmp.Diff(specData, currentData)
	deltaString := collectDiffValues(diff, parameters)
	deltaString = strings.TrimSuffix(deltaString, "\n")
	return deltaString, nil
}

/* CollectDiffValues collects and returns the diff values from the given diff string.
 The function returns lines starting with '+' or '-' that represent the differences,
 and will provide the parent hierarchy for that line based on the given parameters.

 Output example:

snapshotSchedule:
	"frequency":
-		"value":		3600000,
+		"value":		7200000,

*/
func collectDiffValues(diff string, parameters map[string]interface{}) string {
	var diffLines []string
	lines := strings.Split(diff, "\n")
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		line = strings.Join(strings.Fields(trimmedLine), "\t\t")
		processedLine := removeDataTypes(line)
		diffLines = append(diffLines, processedLine)
	}

	delta := processLines(diffLines, parameters)
	return delta.String()
}

/*
removeDataTypes removes data types and specific interfaces from the given string.
The modified string with data types and specific interfaces removed.
Example:

  input: "float64(1500)"
  output: "1500"
*/
func removeDataTypes(line string) string {
	// Define the regular expression to match and capture data types
	re := regexp.MustCompile(`\b(string|float64|bool|int|)\(([^)]*)\)`)
	noDataTypes := re.ReplaceAllString(line, "$2")

	// Define the regular expression to match and remove specific interfaces
	re = regexp.MustCompile(`(map\[string\]interface\{\}|\[\]interface\{\})`)
	noInterfaces := re.ReplaceAllString(noDataTypes, "$2")
	return noInterfaces
}

// processLines processes the diff lines and generates the delta configuration.
func processLines(lines []string, parameters map[string]interface{}) strings.Builder {
	var delta strings.Builder
	lastParent := "-"
	for i, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		// Check if the line starts with a "+" or "-" indicating an added or removed configuration.
		if strings.HasPrefix(trimmedLine, "+") || strings.HasPrefix(trimmedLine, "-") {
			// Search for the parent and sub-parameters of the line in the given properties.
			parent := searchParameters(lines, i, parameters)
			if parent == ParentFound {
				// If the line represents a parameter itself, add it directly to the delta.
				trimmedLine := strings.TrimSpace(trimmedLine)
				line = strings.Join(strings.Fields(trimmedLine), "  ")
				delta.WriteString(line)
				delta.WriteString("\n")
				continue
			}
			// If the parent has changed, add a newline and the parent to the delta.
			if parent != lastParent {
				delta.WriteString("\n")
				delta.WriteString(parent)
				lastParent = parent
			}
			// Add the line to the delta.
			delta.WriteString(trimmedLine)
			delta.WriteString("\n")
		}
	}

	return delta
}

// searchParameters searches for the parent and sub-parameters of a given line in the given resource properties.
// It iterates over the lines starting from the given line number and goes upwards to find the relevant information.
// Parameters:
//   - lines: A slice of strings representing the lines of the diff.
//   - lineNumber: The index of the line being processed.
//   - parameters: A map of resource properties with their corresponding values.
// Returns:
//   - A string representing the hierarchy of the parent and sub-parameters, or "param_found" if the line represents a parameter itself.
//     The hierarchy is constructed in the format: "parent:\n\t"sub-parameter":\n".
func searchParameters(lines []string, lineNumber int, parameters map[string]interface{}) string {
	var result string

	for i := lineNumber; i >= 0; i-- {
		line := lines[i]

		// Check if the line matches any parameter or sub-parameter in the resource properties.
		for param, subParams := range parameters {
			if subParams != nil {
				subParamsList, ok := subParams.([]string)
				if ok {
					for _, subParam := range subParamsList {
						// If a sub-parameter is found in the line, construct the corresponding hierarchy.
						if strings.Contains(line, subParam) {
							if i == lineNumber {
								// If the line represents the sub-parameter itself, return the parent parameter.
								return fmt.Sprintf("%s:\n", param)
							}
							// Append the sub-parameter to the hierarchy.
							result += fmt.Sprintf("%s:\n\t\"%s\":\n", param, subParam)
							return result
						}
					}
				}
			}
		}

		// Check if the line matches any parameter in the resource properties.
		for param := range parameters {
			if strings.Contains(line, param) {
				if i == lineNumber {
					// If the line represents the parameter itself, indicate it with "param_found".
					return ParentFound
				}
				// Return the parent parameter.
				return fmt.Sprintf("%s:\n", param)
			}
		}
	}

	return result
}
