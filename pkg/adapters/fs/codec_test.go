package fs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

func TestYAMLCodec_Folder(t *testing.T) {
	codec := fs.NewYAMLCodec()

	t.Run("Round Trip Keeps Tag Order", func(t *testing.T) {
		in := core.Metadata{Title: "Test Lib", Tags: []string{"zeta", "alpha", "mid"}}

		data, err := codec.EncodeFolder(in)
		require.NoError(t, err)

		out, err := codec.DecodeFolder(data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("Nil Tags Encode As Empty List", func(t *testing.T) {
		data, err := codec.EncodeFolder(core.Metadata{Title: "Bare"})
		require.NoError(t, err)

		out, err := codec.DecodeFolder(data)
		require.NoError(t, err)
		assert.Equal(t, []string{}, out.Tags)
	})

	t.Run("Rejects Corrupt Input", func(t *testing.T) {
		cases := map[string]string{
			"invalid yaml":  "title: [unclosed\n",
			"missing title": "tags: [a]\n",
			"empty title":   "title: \"\"\ntags: []\n",
			"missing tags":  "title: Lib\n",
			"wrong shape":   "title: Lib\ntags:\n  nested: map\n",
			"empty file":    "",
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := codec.DecodeFolder([]byte(input))
				assert.ErrorIs(t, err, core.ErrCorruptMetadata)
			})
		}
	})
}

func TestYAMLCodec_Note(t *testing.T) {
	codec := fs.NewYAMLCodec()

	t.Run("Round Trip Keeps Date And Offset", func(t *testing.T) {
		zone := time.FixedZone("UTC-3", -3*60*60)
		in := core.NoteMetadata{
			Metadata: core.Metadata{Title: "Test Note", Tags: []string{"mytag", "other"}},
			Author:   "me",
			Date:     time.Date(2025, 3, 17, 9, 30, 15, 0, zone),
		}

		data, err := codec.EncodeNote(in)
		require.NoError(t, err)

		out, err := codec.DecodeNote(data)
		require.NoError(t, err)
		assert.Equal(t, in.Metadata, out.Metadata)
		assert.Equal(t, in.Author, out.Author)
		assert.True(t, in.Date.Equal(out.Date), "date %v != %v", in.Date, out.Date)
		_, offset := out.Date.Zone()
		assert.Equal(t, -3*60*60, offset)
	})

	t.Run("Accepts Date Only Values", func(t *testing.T) {
		out, err := codec.DecodeNote([]byte("title: Test Note\ntags: [mytag]\nauthor: me\ndate: 2025-03-17\n"))
		require.NoError(t, err)
		assert.True(t, out.Date.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("Accepts Quoted Dates", func(t *testing.T) {
		cases := map[string]time.Time{
			`"2025-03-17"`:           time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
			`'2025-03-17T10:00:00Z'`: time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
			`"2025-03-17 10:00:00"`:  time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
		}
		for raw, want := range cases {
			t.Run(raw, func(t *testing.T) {
				out, err := codec.DecodeNote([]byte("title: Test Note\ntags: [mytag]\nauthor: me\ndate: " + raw + "\n"))
				require.NoError(t, err)
				assert.True(t, out.Date.Equal(want), "date %v != %v", out.Date, want)
			})
		}
	})

	t.Run("Empty Author Is Allowed", func(t *testing.T) {
		out, err := codec.DecodeNote([]byte("title: N\ntags: []\nauthor: \"\"\ndate: 2025-03-17T10:00:00Z\n"))
		require.NoError(t, err)
		assert.Equal(t, "", out.Author)
	})

	t.Run("Rejects Missing Fields", func(t *testing.T) {
		cases := map[string]string{
			"missing author": "title: N\ntags: []\ndate: 2025-03-17T10:00:00Z\n",
			"missing date":   "title: N\ntags: []\nauthor: me\n",
			"bad date":       "title: N\ntags: []\nauthor: me\ndate: [1, 2]\n",
			"unparsed date":  "title: N\ntags: []\nauthor: me\ndate: \"someday\"\n",
			"null date":      "title: N\ntags: []\nauthor: me\ndate: ~\n",
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := codec.DecodeNote([]byte(input))
				assert.ErrorIs(t, err, core.ErrCorruptMetadata)
			})
		}
	})
}
