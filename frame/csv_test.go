package frame

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "Name,Country,Age\nann,NL,31\nbob,,40\ncid,DE,\n"

	f, err := ReadCSV(strings.NewReader(in), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Country", "Age"}, f.Names())
	assert.Equal(t, 3, f.Width())
	assert.Equal(t, 3, f.Height())

	country, err := f.Column("Country")
	require.NoError(t, err)
	assert.Equal(t, "Country", country.Name())
	assert.Equal(t, 1, country.NullCount())

	v, ok := country.Value(0)
	assert.True(t, ok)
	assert.Equal(t, "NL", v)
	_, ok = country.Value(1)
	assert.False(t, ok, "empty cell is null")
}

func TestReadCSVOptions(t *testing.T) {
	in := "NL;1\nNA;2\nDE;-\n"

	f, err := ReadCSV(strings.NewReader(in), ReadOptions{
		Separator:  ';',
		NoHeader:   true,
		NullValues: []string{"NA", "-"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, f.Names())
	assert.Equal(t, 3, f.Height())

	c1, err := f.Column("column_1")
	require.NoError(t, err)
	assert.Equal(t, 1, c1.NullCount())

	c2, err := f.Column("column_2")
	require.NoError(t, err)
	assert.Equal(t, 1, c2.NullCount())
}

func TestReadCSVStripsBOM(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "plain header", in: "\ufeffCountry,x\nNL,1\n"},
		{name: "quoted header", in: "\ufeff\"Country\",x\nNL,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ReadCSV(strings.NewReader(tt.in), ReadOptions{})
			require.NoError(t, err)
			assert.Equal(t, []string{"Country", "x"}, f.Names())

			c, err := f.Column("Country")
			require.NoError(t, err)
			v, ok := c.Value(0)
			assert.True(t, ok)
			assert.Equal(t, "NL", v)
		})
	}
}

func TestReadCSVBOMOnly(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("\ufeff"), ReadOptions{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("Country,City\n"), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, f.Height())
	assert.Equal(t, 2, f.Width())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantIs  error
		wantMsg string
	}{
		{name: "empty input", in: "", wantIs: ErrNoData},
		{name: "ragged row", in: "a,b\n1,2\n3\n", wantMsg: "csv line 3"},
		{name: "duplicate header", in: "a,a\n1,2\n", wantIs: ErrDuplicateColumn},
		{name: "bad quote", in: "a\n\"x\n", wantMsg: "csv line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), ReadOptions{})
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs), "got %v", err)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestColumnNotFound(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a,b\n1,2\n"), ReadOptions{})
	require.NoError(t, err)

	_, err = f.Column("Country")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "[a b]")
}
