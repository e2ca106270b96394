// Package release packages the built widget script into versioned, integrity-hashed artifacts.
package release

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"
)

const versionsFile = "versions.json"

// Integrity holds SRI digests in "<alg>-<base64>" form.
type Integrity struct {
	SHA256 string `json:"sha256"`
	SHA384 string `json:"sha384"`
	SHA512 string `json:"sha512"`
}

// Metadata describes one released script.
type Metadata struct {
	Version   string    `json:"version"`
	Filename  string    `json:"filename"`
	Size      int       `json:"size"`
	Integrity Integrity `json:"integrity"`
	BuildDate string    `json:"buildDate"`
}

// Artifact is a file written by a release.
type Artifact struct {
	Name        string
	Path        string
	ContentType string
}

// Result summarizes a release.
type Result struct {
	Metadata        Metadata
	Artifacts       []Artifact
	Versions        []string
	VersionsUpdated bool
	Published       bool
}

// ScriptTag returns the HTML snippet that loads the released script with SRI.
func (r *Result) ScriptTag() string {
	return fmt.Sprintf(`<script src="%s" integrity="%s" crossorigin="anonymous"></script>`,
		r.Metadata.Filename, r.Metadata.Integrity.SHA384)
}

// Publisher uploads release artifacts somewhere public.
type Publisher interface {
	Publish(ctx context.Context, name, contentType string, body []byte) error
}

// Packager writes release artifacts into a directory.
type Packager struct {
	name      string
	dir       string
	publisher Publisher
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a Packager.
type Option func(*Packager)

// WithPublisher uploads every artifact after it has been written locally.
func WithPublisher(p Publisher) Option {
	return func(pk *Packager) {
		pk.publisher = p
	}
}

// WithClock overrides the build date source.
func WithClock(now func() time.Time) Option {
	return func(pk *Packager) {
		pk.now = now
	}
}

// NewPackager creates a packager writing <name>-<version>.js files into dir.
func NewPackager(name, dir string, logger *zap.Logger, opts ...Option) *Packager {
	p := &Packager{
		name:   name,
		dir:    dir,
		now:    time.Now,
		logger: logger.Named("Packager"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Release copies source into the release directory as version, writes its metadata and
// adds the version to the index.
func (p *Packager) Release(ctx context.Context, version, source string) (*Result, error) {
	if _, err := ParseVersion(version); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("build output %s not found", source)
		}
		return nil, fmt.Errorf("failed to read build output: %w", err)
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create release directory: %w", err)
	}

	scriptName := fmt.Sprintf("%s-%s.js", p.name, version)
	scriptPath := filepath.Join(p.dir, scriptName)
	if err := os.WriteFile(scriptPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", scriptName, err)
	}
	p.logger.Info("Copied build output", zap.String("file", scriptPath))

	meta := Metadata{
		Version:  version,
		Filename: scriptName,
		Size:     len(content),
		Integrity: Integrity{
			SHA256: sriDigest("sha256", sha256.New(), content),
			SHA384: sriDigest("sha384", sha512.New384(), content),
			SHA512: sriDigest("sha512", sha512.New(), content),
		},
		BuildDate: p.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	metaName := fmt.Sprintf("metadata-%s.json", version)
	metaPath := filepath.Join(p.dir, metaName)
	if err := writeJSON(metaPath, meta); err != nil {
		return nil, err
	}
	p.logger.Info("Wrote release metadata", zap.String("file", metaPath))

	result := &Result{
		Metadata: meta,
		Artifacts: []Artifact{
			{Name: scriptName, Path: scriptPath, ContentType: "application/javascript"},
			{Name: metaName, Path: metaPath, ContentType: "application/json"},
		},
	}

	versionsPath := filepath.Join(p.dir, versionsFile)
	result.Versions, result.VersionsUpdated, err = updateIndex(versionsPath, version)
	if err != nil {
		return nil, err
	}
	if result.VersionsUpdated {
		p.logger.Info("Updated version index", zap.Strings("versions", result.Versions))
		result.Artifacts = append(result.Artifacts, Artifact{Name: versionsFile, Path: versionsPath, ContentType: "application/json"})
	}

	if p.publisher != nil {
		if err := p.publish(ctx, result.Artifacts); err != nil {
			return nil, err
		}
		result.Published = true
	}

	return result, nil
}

func (p *Packager) publish(ctx context.Context, artifacts []Artifact) error {
	for _, a := range artifacts {
		body, err := os.ReadFile(a.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s for publishing: %w", a.Name, err)
		}
		if err := p.publisher.Publish(ctx, a.Name, a.ContentType, body); err != nil {
			return fmt.Errorf("failed to publish %s: %w", a.Name, err)
		}
		p.logger.Info("Published artifact", zap.String("name", a.Name), zap.Int("bytes", len(body)))
	}
	return nil
}

// updateIndex adds version to the versions file if it is not listed yet.
func updateIndex(path, version string) ([]string, bool, error) {
	versions := []string{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &versions); err != nil {
			return nil, false, fmt.Errorf("failed to decode %s: %w", versionsFile, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, false, fmt.Errorf("failed to read %s: %w", versionsFile, err)
	}

	if slices.Contains(versions, version) {
		return versions, false, nil
	}

	versions = append(versions, version)
	SortDescending(versions)
	if err := writeJSON(path, versions); err != nil {
		return nil, false, err
	}
	return versions, true, nil
}

func sriDigest(alg string, h hash.Hash, content []byte) string {
	h.Write(content)
	return alg + "-" + base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
