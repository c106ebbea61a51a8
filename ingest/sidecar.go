package ingest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"dms-backend/logger"
	"dms-backend/models"
)

// SidecarEntity is one named reference declared in a JSON sidecar file.
// Missing sub-fields decode to empty strings.
type SidecarEntity struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type sidecarPayload struct {
	Entities []SidecarEntity `json:"entities"`
}

// SidecarLoader reads the optional JSON companion of an HTML file
type SidecarLoader struct {
	log *logger.Logger
}

// NewSidecarLoader creates a sidecar loader
func NewSidecarLoader(log *logger.Logger) *SidecarLoader {
	return &SidecarLoader{log: log}
}

// Load returns the entity list declared at path. Sidecars are optional, so a
// missing file yields an empty list; a file that exists but does not decode
// is logged and also yields an empty list. Load never fails.
func (l *SidecarLoader) Load(path string) []SidecarEntity {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.log.Warn("cannot read sidecar", "file", path, "error", err)
		}
		return nil
	}

	var payload sidecarPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		l.log.Warn("cannot decode sidecar", "file", path, "error", err)
		return nil
	}

	// Labels are stored verbatim, but anything outside the canonical set is
	// worth surfacing.
	for _, entity := range payload.Entities {
		if !models.EntityLabel(entity.Label).Known() {
			l.log.Warn("unrecognized entity label", "file", path, "name", entity.Name, "label", entity.Label)
		}
	}

	return payload.Entities
}
