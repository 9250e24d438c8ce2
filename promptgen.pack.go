package promptgen

import (
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Pack field names, matching the YAML keys
const (
	PackFieldName   = "name"
	PackFieldGroups = "groups"
)

// ParseLibraryPack decodes a YAML library pack into a Library. The pack
// shape is id, name, description, groups (name, tags, options) and
// templates (id, name, description, source). A missing library or group
// name and a duplicate group name are decode errors. Missing ids get
// generated ones. String-level only: callers do the file I/O.
func ParseLibraryPack(yamlText string) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal([]byte(yamlText), &lib); err != nil {
		return nil, NewPackDecodeError(err)
	}
	if err := validatePack(&lib); err != nil {
		return nil, err
	}
	if lib.ID == "" {
		lib.ID = uuid.New().String()
	}
	for _, t := range lib.Templates {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
	}
	return &lib, nil
}

// SerializeLibraryPack encodes a library as a YAML pack. The same
// structural rules as ParseLibraryPack apply, so a serialized pack
// always parses back.
func SerializeLibraryPack(lib *Library) (string, error) {
	if lib == nil {
		return "", NewPackFieldError(ErrMsgPackMissingLibName, PackFieldName)
	}
	if err := validatePack(lib); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(lib)
	if err != nil {
		return "", NewPackEncodeError(err)
	}
	return string(data), nil
}

// validatePack checks the structural rules shared by both directions.
func validatePack(lib *Library) error {
	if strings.TrimSpace(lib.Name) == "" {
		return NewPackFieldError(ErrMsgPackMissingLibName, PackFieldName)
	}
	seen := make(map[string]struct{}, len(lib.Groups))
	for _, g := range lib.Groups {
		if g == nil || strings.TrimSpace(g.Name) == "" {
			return NewPackFieldError(ErrMsgPackMissingGroupName, PackFieldGroups)
		}
		if _, dup := seen[g.Name]; dup {
			return NewPackDuplicateGroupError(g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}
