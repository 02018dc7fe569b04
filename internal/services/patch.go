package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/validation"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// immutablePaths may not be targeted by a patch operation.
var immutablePaths = []string{"/id"}

// applyPatch applies an RFC 6902 document to the JSON form of current, decodes
// the result into dst and validates it.
func applyPatch(current any, raw []byte, dst any) error {
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return domain.ValidationError{Msg: "invalid JSON Patch document", Err: err}
	}
	for _, op := range patch {
		path, _ := op.Path()
		if isImmutable(path) {
			return domain.ValidationError{Field: strings.TrimPrefix(path, "/"), Msg: fmt.Sprintf("modifying %s is not allowed", path)}
		}
		if op.Kind() == "move" {
			if from, err := op.From(); err == nil && isImmutable(from) {
				return domain.ValidationError{Field: strings.TrimPrefix(from, "/"), Msg: fmt.Sprintf("modifying %s is not allowed", from)}
			}
		}
	}

	doc, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode patch target: %w", err)
	}
	patched, err := patch.Apply(doc)
	if err != nil {
		return domain.ValidationError{Msg: "patch could not be applied", Err: err}
	}
	if err := json.Unmarshal(patched, dst); err != nil {
		return domain.ValidationError{Msg: "patched document is invalid", Err: err}
	}
	return validation.Struct(dst)
}

func isImmutable(path string) bool {
	for _, p := range immutablePaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
