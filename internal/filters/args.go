package filters

import (
	"fmt"
	"strings"

	"github.com/yairfalse/hakija/pkg/resolver"
)

// Kwargs are the loosely-typed keyword arguments a template passes to a
// filter. The keys a filter consumes are coerced to typed query fields;
// for tag filters, every remaining key is a tag constraint.
type Kwargs map[string]any

// Kwarg keys the filters consume. Each filter reserves only the keys it
// reads, so a tag can share a name with a kwarg of an unrelated filter.
const (
	keyState     = "state"
	keyReturnKey = "return_key"
	keyVPCID     = "vpc_id"
	keyRegion    = "region"
	keyOwner     = "owner"
	keyNames     = "names"
	keyKey       = "key"
	keyName      = "name"
)

// boundaryErr reports a malformed filter invocation before any query is built.
func boundaryErr(filter, format string, args ...any) error {
	return &resolver.ResolutionError{Op: filter, Detail: fmt.Sprintf(format, args...)}
}

// stringKwarg returns the named kwarg coerced to a string. Absent keys return
// ok=false; present keys with a non-string value are an error.
func stringKwarg(filter string, kw Kwargs, key string) (string, bool, error) {
	raw, ok := kw[key]
	if !ok {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, boundaryErr(filter, "kwarg %q must be a string, got %T", key, raw)
	}
	return value, true, nil
}

// optionalString returns the named kwarg or fallback when absent.
func optionalString(filter string, kw Kwargs, key, fallback string) (string, error) {
	value, ok, err := stringKwarg(filter, kw, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return fallback, nil
	}
	return value, nil
}

// requireString returns the named kwarg, failing when it is absent or empty.
func requireString(filter string, kw Kwargs, key string) (string, error) {
	value, ok, err := stringKwarg(filter, kw, key)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return "", boundaryErr(filter, "kwarg %q is required", key)
	}
	return value, nil
}

// stringsKwarg returns the named kwarg as a list. A plain string is split on
// commas so callers can pass either form.
func stringsKwarg(filter string, kw Kwargs, key string) ([]string, error) {
	raw, ok := kw[key]
	if !ok {
		return nil, boundaryErr(filter, "kwarg %q is required", key)
	}

	switch v := raw.(type) {
	case string:
		var values []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		return values, nil
	case []string:
		return v, nil
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, boundaryErr(filter, "kwarg %q must be a list of strings, got %T element", key, item)
			}
			values = append(values, s)
		}
		return values, nil
	default:
		return nil, boundaryErr(filter, "kwarg %q must be a string or list of strings, got %T", key, raw)
	}
}

// tagConstraints collects every kwarg the filter does not itself consume as
// a tag constraint. Only the listed keys are held back, so a tag may share a
// name with a kwarg of an unrelated filter.
func tagConstraints(filter string, kw Kwargs, consumed ...string) (map[string]string, error) {
	reserved := make(map[string]bool, len(consumed))
	for _, key := range consumed {
		reserved[key] = true
	}

	tags := make(map[string]string)
	for key, raw := range kw {
		if reserved[key] {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return nil, boundaryErr(filter, "tag %q must be a string, got %T", key, raw)
		}
		tags[key] = value
	}
	return tags, nil
}

// rejectUnknown fails on any kwarg outside the allowed set. Filters without
// tag semantics use it so a typoed kwarg surfaces instead of being ignored.
func rejectUnknown(filter string, kw Kwargs, allowed ...string) error {
	permitted := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		permitted[key] = true
	}
	for key := range kw {
		if !permitted[key] {
			return boundaryErr(filter, "unknown kwarg %q", key)
		}
	}
	return nil
}

// instanceField maps a return_key kwarg to a resolver field selector. Both the
// upstream inventory attribute names and the snake_case selectors are accepted.
func instanceField(filter, returnKey string) (string, error) {
	switch returnKey {
	case "", resolver.FieldInstanceID, "InstanceId":
		return resolver.FieldInstanceID, nil
	case resolver.FieldPrivateIP, "PrivateIpAddress":
		return resolver.FieldPrivateIP, nil
	case resolver.FieldPublicIP, "PublicIpAddress":
		return resolver.FieldPublicIP, nil
	case resolver.FieldPrivateDNS, "PrivateDnsName":
		return resolver.FieldPrivateDNS, nil
	case resolver.FieldPublicDNS, "PublicDnsName":
		return resolver.FieldPublicDNS, nil
	case resolver.FieldName, "Name":
		return resolver.FieldName, nil
	default:
		return "", boundaryErr(filter, "unknown return_key %q", returnKey)
	}
}

// groupField maps a return_key kwarg to a security group field selector.
func groupField(filter, returnKey string) (string, error) {
	switch returnKey {
	case "", resolver.FieldGroupID, "GroupId":
		return resolver.FieldGroupID, nil
	case resolver.FieldGroupName, "GroupName":
		return resolver.FieldGroupName, nil
	default:
		return "", boundaryErr(filter, "unknown return_key %q", returnKey)
	}
}
