/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package flasharray

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ItemsEnvelope is the wire format of a successful response body.  Every
// collection endpoint wraps its results in an items list.
type ItemsEnvelope struct {
	ContinuationToken *string `json:"continuation_token,omitempty"`
	TotalItemCount    *int    `json:"total_item_count,omitempty"`
}

// BuildQueryString walks a struct tagged with `q` tags and produces the
// corresponding URL query string.  Nil pointer fields and empty slices are
// omitted; slices are rendered as comma separated lists which is the list
// encoding the array expects.
func BuildQueryString(opts interface{}) (string, error) {
	if opts == nil {
		return "", nil
	}

	optsValue := reflect.ValueOf(opts)
	if optsValue.Kind() == reflect.Ptr {
		if optsValue.IsNil() {
			return "", nil
		}
		optsValue = optsValue.Elem()
	}

	optsType := optsValue.Type()
	if optsType.Kind() != reflect.Struct {
		return "", fmt.Errorf("options type is not a struct: %v", optsType)
	}

	params := url.Values{}

	for i := 0; i < optsValue.NumField(); i++ {
		value := optsValue.Field(i)
		field := optsType.Field(i)

		tag := field.Tag.Get("q")
		if tag == "" {
			continue
		}

		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				continue
			}
			value = value.Elem()
		}

		switch value.Kind() {
		case reflect.String:
			if value.String() != "" {
				params.Add(tag, value.String())
			}
		case reflect.Bool:
			params.Add(tag, strconv.FormatBool(value.Bool()))
		case reflect.Int, reflect.Int32, reflect.Int64:
			params.Add(tag, strconv.FormatInt(value.Int(), 10))
		case reflect.Slice:
			if value.Len() == 0 {
				continue
			}
			elements := make([]string, 0, value.Len())
			for j := 0; j < value.Len(); j++ {
				elements = append(elements, fmt.Sprintf("%v", value.Index(j).Interface()))
			}
			params.Add(tag, strings.Join(elements, ","))
		default:
			return "", fmt.Errorf("unsupported query field type %v for %q", value.Kind(), tag)
		}
	}

	encoded := params.Encode()
	if encoded == "" {
		return "", nil
	}

	return "?" + encoded, nil
}
