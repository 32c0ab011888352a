// Package yaml loads site profiles from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/docassist"
	"gopkg.in/yaml.v3"
)

// LoadSiteProfile reads a site profile from the YAML file at path.
// Fields missing from the file keep their docassist.DefaultSiteProfile values.
func LoadSiteProfile(path string) (docassist.SiteProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return docassist.SiteProfile{}, fmt.Errorf("open site profile: %w", err)
	}
	defer f.Close()

	return DecodeSiteProfile(f)
}

// DecodeSiteProfile reads a site profile from r. Unknown keys are rejected.
func DecodeSiteProfile(r io.Reader) (docassist.SiteProfile, error) {
	profile := docassist.DefaultSiteProfile()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return docassist.SiteProfile{}, docassist.Errorf(docassist.EINVALID, "invalid site profile: %v", err)
	}

	if err := profile.Validate(); err != nil {
		return docassist.SiteProfile{}, err
	}
	return profile, nil
}
