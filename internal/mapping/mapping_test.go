package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	table := Default()
	require.Equal(t, 38, table.Len())
	require.NoError(t, Validate(table))
}

func TestDefaultTableOrder(t *testing.T) {
	pairs := Default().Pairs()
	assert.Equal(t, Pair{Old: "@radix-ui/react-tooltip@1.1.8", New: "@radix-ui/react-tooltip"}, pairs[0])
	assert.Equal(t, Pair{Old: "vaul@1.1.2", New: "vaul"}, pairs[len(pairs)-1])
}

func TestPairsReturnsCopy(t *testing.T) {
	table := Default()
	pairs := table.Pairs()
	pairs[0].Old = "mutated"

	assert.Equal(t, "@radix-ui/react-tooltip@1.1.8", table.Pairs()[0].Old)
}

func TestNewCopiesInput(t *testing.T) {
	in := []Pair{{Old: "a@1.0.0", New: "a"}}
	table := New(in...)
	in[0].Old = "b@1.0.0"

	assert.Equal(t, "a@1.0.0", table.Pairs()[0].Old)
}

func TestWithAppendsWithoutMutating(t *testing.T) {
	base := New(Pair{Old: "a@1.0.0", New: "a"})
	merged := base.With(Pair{Old: "b@2.0.0", New: "b"})

	assert.Equal(t, 1, base.Len())
	require.Equal(t, 2, merged.Len())
	assert.Equal(t, "b", merged.Pairs()[1].New)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []Pair
		wantErr bool
	}{
		{name: "empty table", pairs: nil},
		{name: "scoped package", pairs: []Pair{{Old: "@scope/pkg@1.2.3", New: "@scope/pkg"}}},
		{name: "prerelease version", pairs: []Pair{{Old: "pkg@1.0.0-beta.1", New: "pkg"}}},
		{name: "empty new key", pairs: []Pair{{Old: "pkg@1.0.0", New: ""}}, wantErr: true},
		{name: "no version suffix", pairs: []Pair{{Old: "pkg", New: "pkg"}}, wantErr: true},
		{name: "new is not a prefix", pairs: []Pair{{Old: "pkg@1.0.0", New: "other"}}, wantErr: true},
		{name: "bare at sign", pairs: []Pair{{Old: "pkg@", New: "pkg"}}, wantErr: true},
		{
			name: "duplicate key",
			pairs: []Pair{
				{Old: "pkg@1.0.0", New: "pkg"},
				{Old: "pkg@1.0.0", New: "pkg"},
			},
			wantErr: true,
		},
		{
			name: "key inside a longer key",
			pairs: []Pair{
				{Old: "ui@1.0.0", New: "ui"},
				{Old: "react-ui@1.0.0", New: "react-ui"},
			},
			wantErr: true,
		},
		{
			name: "similar names without collision",
			pairs: []Pair{
				{Old: "@radix-ui/react-toggle@1.1.2", New: "@radix-ui/react-toggle"},
				{Old: "@radix-ui/react-toggle-group@1.1.2", New: "@radix-ui/react-toggle-group"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(New(tt.pairs...))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTable), "expected ErrInvalidTable, got %v", err)
		})
	}
}
