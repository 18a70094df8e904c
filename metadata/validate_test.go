package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/internal/testfixtures"
	"github.com/broady/scalegen/metadata"
)

func TestValidate_Fixture(t *testing.T) {
	require.NoError(t, metadata.Validate(testfixtures.Runtime()))
}

func TestValidate_Nil(t *testing.T) {
	err := metadata.Validate(nil)
	require.ErrorIs(t, err, scalegen.ErrInvalidMetadata)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *metadata.Prefixed)
		field  string
	}{
		{
			name:   "wrong magic",
			mutate: func(p *metadata.Prefixed) { p.Magic = 0xdeadbeef },
			field:  "Magic",
		},
		{
			name: "duplicate type id",
			mutate: func(p *metadata.Prefixed) {
				p.V13.Types.Types[1].ID = p.V13.Types.Types[0].ID
			},
			field: "Types",
		},
		{
			name:   "zero type id",
			mutate: func(p *metadata.Prefixed) { p.V13.Types.Types[0].ID = 0 },
			field:  "ID",
		},
		{
			name:   "missing definition",
			mutate: func(p *metadata.Prefixed) { p.V13.Types.Types[0].Type.Def = nil },
			field:  "Def",
		},
		{
			name:   "unnamed module",
			mutate: func(p *metadata.Prefixed) { p.V13.Modules[0].Name = "" },
			field:  "Name",
		},
		{
			name:   "unnamed call argument",
			mutate: func(p *metadata.Prefixed) { p.V13.Modules[2].Calls[0].Args[0].Name = "" },
			field:  "Name",
		},
		{
			name:   "event argument without type",
			mutate: func(p *metadata.Prefixed) { p.V13.Modules[0].Events[0].Args[0].Type = 0 },
			field:  "Type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testfixtures.Runtime()
			tt.mutate(p)

			err := metadata.Validate(p)
			require.Error(t, err)
			require.ErrorIs(t, err, scalegen.ErrInvalidMetadata)

			var se *scalegen.Error
			require.ErrorAs(t, err, &se)
			require.Contains(t, se.Message, tt.field)
		})
	}
}

func TestValidate_IgnoresVersionAndReferences(t *testing.T) {
	p := testfixtures.Runtime()
	p.Version = 12
	p.V13.Modules[0].Calls[0].Args[0].Type = 999
	require.NoError(t, metadata.Validate(p))
}
