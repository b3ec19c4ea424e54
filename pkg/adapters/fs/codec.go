package fs

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/quire/pkg/core"
)

// Codec converts metadata records to and from their on-disk form.
type Codec interface {
	// Ext is the metadata file extension, including the dot.
	Ext() string
	EncodeFolder(m core.Metadata) ([]byte, error)
	DecodeFolder(data []byte) (core.Metadata, error)
	EncodeNote(m core.NoteMetadata) ([]byte, error)
	DecodeNote(data []byte) (core.NoteMetadata, error)
}

// folderRecord is the wire shape of library and folder metadata.
// Pointer fields distinguish a missing key from an empty value.
type folderRecord struct {
	Title *string   `yaml:"title" validate:"required,min=1"`
	Tags  *[]string `yaml:"tags" validate:"required"`
}

type noteRecord struct {
	Title  *string   `yaml:"title" validate:"required,min=1"`
	Tags   *[]string `yaml:"tags" validate:"required"`
	Author *string   `yaml:"author" validate:"required"`
	Date   *noteDate `yaml:"date" validate:"required"`
}

// noteDate is written as a YAML timestamp and also read back from quoted
// strings, either RFC 3339 or a bare 2006-01-02 date.
type noteDate struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 -07:00",
	time.DateTime,
	time.DateOnly,
}

func (d noteDate) MarshalYAML() (any, error) {
	return d.Time, nil
}

func (d *noteDate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("date must be a scalar, got %s", value.Tag)
	}
	raw := strings.TrimSpace(value.Value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", value.Value)
}

// YAMLCodec stores metadata as YAML mappings.
type YAMLCodec struct {
	validate *validator.Validate
}

// NewYAMLCodec creates the default codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{validate: validator.New()}
}

func (c *YAMLCodec) Ext() string { return ".yaml" }

func (c *YAMLCodec) EncodeFolder(m core.Metadata) ([]byte, error) {
	tags := nonNil(m.Tags)
	return encodeYAML(folderRecord{Title: &m.Title, Tags: &tags})
}

func (c *YAMLCodec) DecodeFolder(data []byte) (core.Metadata, error) {
	var rec folderRecord
	if err := c.decode(data, &rec); err != nil {
		return core.Metadata{}, err
	}
	return core.Metadata{Title: *rec.Title, Tags: *rec.Tags}, nil
}

func (c *YAMLCodec) EncodeNote(m core.NoteMetadata) ([]byte, error) {
	tags := nonNil(m.Tags)
	return encodeYAML(noteRecord{
		Title:  &m.Title,
		Tags:   &tags,
		Author: &m.Author,
		Date:   &noteDate{m.Date},
	})
}

func (c *YAMLCodec) DecodeNote(data []byte) (core.NoteMetadata, error) {
	var rec noteRecord
	if err := c.decode(data, &rec); err != nil {
		return core.NoteMetadata{}, err
	}
	return core.NoteMetadata{
		Metadata: core.Metadata{Title: *rec.Title, Tags: *rec.Tags},
		Author:   *rec.Author,
		Date:     rec.Date.Time,
	}, nil
}

func (c *YAMLCodec) decode(data []byte, rec any) error {
	if err := yaml.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("%w: invalid yaml: %v", core.ErrCorruptMetadata, err)
	}
	if err := c.validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: %v", core.ErrCorruptMetadata, err)
	}
	return nil
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
