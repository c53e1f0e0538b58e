// Package catalog reads exercise seed files, keeps a cached view of the
// catalog and imports seed files into a repository.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"alcyxob/workout-planner/internal/domain"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath guesses the seed file format from its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported catalog file %q: want .yaml, .yml or .json", path)
}

// Tags is a tag field of a seed record. It accepts a list or a string holding
// a JSON array; anything else reads as empty.
type Tags domain.TagList

func (t *Tags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			*t = Tags(domain.ParseTagList(""))
			return nil
		}
		*t = Tags(list)
	case yaml.ScalarNode:
		*t = Tags(domain.ParseTagList(node.Value))
	default:
		*t = Tags{}
	}
	return nil
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list domain.TagList
	if err := list.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Tags(list)
	return nil
}

// Record is one exercise of a seed file.
type Record struct {
	ExternalID           string `yaml:"externalId" json:"externalId"`
	Name                 string `yaml:"name" json:"name"`
	Description          string `yaml:"description" json:"description"`
	DifficultyMin        string `yaml:"difficultyMin" json:"difficultyMin"`
	DifficultyMax        string `yaml:"difficultyMax" json:"difficultyMax"`
	Equipment            Tags   `yaml:"equipment" json:"equipment"`
	WorkoutType          string `yaml:"workoutType" json:"workoutType"`
	MovementPattern      string `yaml:"movementPattern" json:"movementPattern"`
	FocusAreas           Tags   `yaml:"focusAreas" json:"focusAreas"`
	ImpactLevel          string `yaml:"impactLevel" json:"impactLevel"`
	AvoidModify          Tags   `yaml:"avoidModify" json:"avoidModify"`
	PreferenceExclusions Tags   `yaml:"preferenceExclusions" json:"preferenceExclusions"`
	Phases               Tags   `yaml:"phases" json:"phases"`
	EasierVariation      string `yaml:"easierVariation" json:"easierVariation"`
	HarderVariation      string `yaml:"harderVariation" json:"harderVariation"`
	MediaKey             string `yaml:"mediaKey" json:"mediaKey"`
}

// Exercise converts the record, applying the ingest defaults.
func (r *Record) Exercise() domain.Exercise {
	ex := domain.Exercise{
		ExternalID:               strings.TrimSpace(r.ExternalID),
		Name:                     strings.TrimSpace(r.Name),
		Description:              strings.TrimSpace(r.Description),
		DifficultyMin:            strings.ToLower(strings.TrimSpace(r.DifficultyMin)),
		DifficultyMax:            strings.ToLower(strings.TrimSpace(r.DifficultyMax)),
		EquipmentTags:            domain.TagList(r.Equipment),
		WorkoutType:              domain.WorkoutType(strings.TrimSpace(r.WorkoutType)),
		MovementPattern:          domain.MovementPattern(strings.TrimSpace(r.MovementPattern)),
		FocusAreaTags:            domain.TagList(r.FocusAreas),
		ImpactLevel:              domain.ImpactLevel(strings.ToLower(strings.TrimSpace(r.ImpactLevel))),
		AvoidModifyFlags:         domain.TagList(r.AvoidModify),
		PreferenceExclusionFlags: domain.TagList(r.PreferenceExclusions),
		PhaseTags:                domain.TagList(r.Phases),
		EasierVariationID:        strings.TrimSpace(r.EasierVariation),
		HarderVariationID:        strings.TrimSpace(r.HarderVariation),
		MediaKey:                 strings.TrimSpace(r.MediaKey),
	}
	if ex.ExternalID == "" {
		ex.ExternalID = Slug(ex.Name)
	}
	ex.ApplyIngestDefaults()
	return ex
}

// document is the object form of a seed file.
type document struct {
	Exercises []Record `yaml:"exercises" json:"exercises"`
}

// Load reads a seed file holding either a list of records or an object with
// an "exercises" list. Every problem found is reported in the returned error.
func Load(r io.Reader, format Format) ([]domain.Exercise, error) {
	records, err := decode(r, format)
	if err != nil {
		return nil, err
	}
	exercises := make([]domain.Exercise, len(records))
	for i := range records {
		exercises[i] = records[i].Exercise()
	}
	if err := Validate(exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func decode(r io.Reader, format Format) ([]Record, error) {
	br := bufio.NewReader(r)
	switch format {
	case FormatYAML:
		var node yaml.Node
		if err := yaml.NewDecoder(br).Decode(&node); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		root := &node
		if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
			root = root.Content[0]
		}
		if root.Kind == yaml.SequenceNode {
			var records []Record
			if err := root.Decode(&records); err != nil {
				return nil, fmt.Errorf("decode yaml catalog: %w", err)
			}
			return records, nil
		}
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		return doc.Exercises, nil
	case FormatJSON:
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		data = bytes.TrimSpace(data)
		if len(data) == 0 {
			return nil, nil
		}
		if data[0] == '[' {
			var records []Record
			if err := json.Unmarshal(data, &records); err != nil {
				return nil, fmt.Errorf("decode json catalog: %w", err)
			}
			return records, nil
		}
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
		return doc.Exercises, nil
	}
	return nil, fmt.Errorf("unsupported catalog format %q", format)
}

// Validate checks a catalog before import.
func Validate(exercises []domain.Exercise) error {
	var errs error
	seen := make(map[string]int, len(exercises))
	for i := range exercises {
		ex := &exercises[i]
		label := fmt.Sprintf("exercise %d", i+1)
		if ex.Name != "" {
			label = fmt.Sprintf("exercise %d (%s)", i+1, ex.Name)
		}

		if ex.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: name is required", label))
		}
		if ex.ExternalID != "" {
			if first, dup := seen[ex.ExternalID]; dup {
				errs = multierr.Append(errs, fmt.Errorf("%s: externalId %q already used by exercise %d", label, ex.ExternalID, first))
			} else {
				seen[ex.ExternalID] = i + 1
			}
		}
		lo, okLo := domain.ExperienceRank(ex.DifficultyMin)
		hi, okHi := domain.ExperienceRank(ex.DifficultyMax)
		if !okLo {
			errs = multierr.Append(errs, fmt.Errorf("%s: unknown difficultyMin %q", label, ex.DifficultyMin))
		}
		if !okHi {
			errs = multierr.Append(errs, fmt.Errorf("%s: unknown difficultyMax %q", label, ex.DifficultyMax))
		}
		if okLo && okHi && lo > hi {
			errs = multierr.Append(errs, fmt.Errorf("%s: difficultyMin is above difficultyMax", label))
		}
		switch ex.WorkoutType {
		case domain.WorkoutTypeStrength, domain.WorkoutTypeConditioning, domain.WorkoutTypeMobility:
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s: unknown workoutType %q", label, ex.WorkoutType))
		}
		switch ex.ImpactLevel {
		case domain.ImpactLow, domain.ImpactHigh:
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s: unknown impactLevel %q", label, ex.ImpactLevel))
		}
	}
	return errs
}

// Slug turns an exercise name into an external id.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
