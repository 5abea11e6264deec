package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRawPolygons(t *testing.T) {
	t.Run("array of records", func(t *testing.T) {
		data := []byte(`[{"nome":"A","coordenadas":[{"latitude":1,"longitude":2}]},{"coordenadas":[]}]`)
		raw, err := DecodeRawPolygons(data)

		require.NoError(t, err)
		require.Len(t, raw, 2)
		require.NotNil(t, raw[0].Name)
		assert.Equal(t, "A", *raw[0].Name)
		assert.Nil(t, raw[1].Name)
	})

	t.Run("non-object elements become empty records", func(t *testing.T) {
		data := []byte(`[1, "x", null, {"coordenadas":[{"latitude":1,"longitude":2}]}]`)
		raw, err := DecodeRawPolygons(data)

		require.NoError(t, err)
		require.Len(t, raw, 4)
		assert.Nil(t, raw[0].Coordinates)
		assert.Len(t, Normalize(raw), 1)
	})

	t.Run("non-string name is treated as absent", func(t *testing.T) {
		data := []byte(`[
			{"nome":7,"coordenadas":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":1},{"latitude":1,"longitude":1}]},
			{"nome":{"pt":"Setor"},"coordenadas":[{"latitude":0,"longitude":0}]},
			{"nome":null,"coordenadas":[{"latitude":0,"longitude":0}]},
			{"nome":"ok","coordenadas":[{"latitude":0,"longitude":0}]}
		]`)
		raw, err := DecodeRawPolygons(data)
		require.NoError(t, err)
		require.Len(t, raw, 4)
		assert.Nil(t, raw[0].Name)
		assert.Nil(t, raw[1].Name)
		assert.Nil(t, raw[2].Name)
		require.NotNil(t, raw[3].Name)
		assert.Equal(t, "ok", *raw[3].Name)

		got := Normalize(raw)
		require.Len(t, got, 4)
		assert.Empty(t, got[0].Name)
		assert.Len(t, got[0].Coordinates, 3)
		assert.Equal(t, "ok", got[3].Name)
	})

	t.Run("empty array", func(t *testing.T) {
		raw, err := DecodeRawPolygons([]byte(`[]`))
		require.NoError(t, err)
		assert.NotNil(t, raw)
		assert.Empty(t, raw)
	})

	for _, doc := range []string{`{"coordenadas":[]}`, `"text"`, `42`, `null`, `{invalid`, ``} {
		t.Run("malformed "+doc, func(t *testing.T) {
			raw, err := DecodeRawPolygons([]byte(doc))
			require.ErrorIs(t, err, ErrMalformedInput)
			assert.NotNil(t, raw)
			assert.Empty(t, raw)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("keeps only records with complete coordinates", func(t *testing.T) {
		data := []byte(`[
			{"nome":"A","coordenadas":[{"latitude":1,"longitude":2},{"latitude":3,"longitude":4}]},
			{"nome":"B"},
			{"nome":"C","coordenadas":[{"latitude":5}]}
		]`)
		raw, err := DecodeRawPolygons(data)
		require.NoError(t, err)

		got := Normalize(raw)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Name)
		assert.Equal(t, []Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}, got[0].Coordinates)
	})

	t.Run("drops records with unusable coordinates", func(t *testing.T) {
		data := []byte(`[
			{"nome":"object","coordenadas":{"latitude":1,"longitude":2}},
			{"nome":"string","coordenadas":"1,2"},
			{"nome":"null","coordenadas":null},
			{"nome":"empty","coordenadas":[]},
			{"nome":"no lng","coordenadas":[{"latitude":1,"longitude":2},{"latitude":3}]},
			{"nome":"bad entry","coordenadas":[{"latitude":"x","longitude":2}]}
		]`)
		raw, err := DecodeRawPolygons(data)
		require.NoError(t, err)
		require.Len(t, raw, 6)

		assert.Empty(t, Normalize(raw))
	})

	t.Run("missing name becomes empty", func(t *testing.T) {
		raw, err := DecodeRawPolygons([]byte(`[{"coordenadas":[{"latitude":1,"longitude":2}]}]`))
		require.NoError(t, err)

		got := Normalize(raw)
		require.Len(t, got, 1)
		assert.Equal(t, "", got[0].Name)
	})

	t.Run("preserves order and duplicates", func(t *testing.T) {
		data := []byte(`[
			{"nome":"first","coordenadas":[{"latitude":1,"longitude":1}]},
			{"nome":"drop"},
			{"nome":"second","coordenadas":[{"latitude":2,"longitude":2}]},
			{"nome":"second","coordenadas":[{"latitude":2,"longitude":2}]}
		]`)
		raw, err := DecodeRawPolygons(data)
		require.NoError(t, err)

		got := Normalize(raw)
		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].Name)
		assert.Equal(t, "second", got[1].Name)
		assert.Equal(t, got[1], got[2])
	})

	t.Run("zero coordinates are valid", func(t *testing.T) {
		raw, err := DecodeRawPolygons([]byte(`[{"coordenadas":[{"latitude":0,"longitude":0}]}]`))
		require.NoError(t, err)

		got := Normalize(raw)
		require.Len(t, got, 1)
		assert.Equal(t, []Coordinate{{Lat: 0, Lng: 0}}, got[0].Coordinates)
	})

	t.Run("unclosed rings pass through", func(t *testing.T) {
		raw, err := DecodeRawPolygons([]byte(`[{"coordenadas":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":1},{"latitude":1,"longitude":1}]}]`))
		require.NoError(t, err)

		got := Normalize(raw)
		require.Len(t, got, 1)
		assert.Len(t, got[0].Coordinates, 3)
	})

	t.Run("empty input", func(t *testing.T) {
		got := Normalize(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
