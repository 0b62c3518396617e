package generate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/logger"
)

// Bundle file names inside <bundle_dir>/<slug>/.
const (
	VoiceProfileFile = "voice_profile.json"
	ManifestFile     = "manifest.json"
)

// Voice is the creator voice used to build the system prompt.
type Voice struct {
	Channel string
	Profile json.RawMessage // voice_profile.json verbatim, "{}" when absent
}

// VoiceStore reads voices from bundle directories.
type VoiceStore struct {
	dir string
}

// NewVoiceStore creates a store rooted at dir.
func NewVoiceStore(dir string) *VoiceStore {
	return &VoiceStore{dir: dir}
}

// ValidSlug reports whether slug is safe to use as a bundle directory name.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

// Load returns the voice for slug. Missing or unreadable bundle files are not
// errors: the profile falls back to "{}" and the channel to the slug.
func (s *VoiceStore) Load(slug string) (Voice, error) {
	if !ValidSlug(slug) {
		return Voice{}, werrors.E(werrors.Op("generate.Load"), werrors.KindInvalid, "invalid slug "+slug)
	}

	log := logger.ComponentLogger("Voice")
	bundle := filepath.Join(s.dir, slug)
	v := Voice{Channel: slug, Profile: json.RawMessage("{}")}

	if data, err := os.ReadFile(filepath.Join(bundle, VoiceProfileFile)); err == nil {
		if json.Valid(data) {
			v.Profile = json.RawMessage(data)
		} else {
			log.Warn("ignoring invalid voice profile", "slug", slug)
		}
	} else if !os.IsNotExist(err) {
		log.Warn("failed to read voice profile", "slug", slug, "error", err)
	}

	if data, err := os.ReadFile(filepath.Join(bundle, ManifestFile)); err == nil {
		var manifest struct {
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(data, &manifest); err != nil {
			log.Warn("ignoring invalid manifest", "slug", slug, "error", err)
		} else if manifest.Channel != "" {
			v.Channel = manifest.Channel
		}
	}

	return v, nil
}
