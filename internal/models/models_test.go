package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		kind EntityKind
		in   string
		want string
		ok   bool
	}{
		{KindLead, "42", "42", true},
		{KindLead, " 007 ", "7", true},
		{KindLead, "0", "", false},
		{KindOpportunity, "abc", "", false},
		{KindAccount, "6F1C2B7E-3D4A-4C8E-9B2F-1A2B3C4D5E6F", "6f1c2b7e-3d4a-4c8e-9b2f-1a2b3c4d5e6f", true},
		{KindContact, "42", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.in, func(t *testing.T) {
			got, ok := tt.kind.CanonicalID(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntityKind(t *testing.T) {
	kind, ok := ParseEntityKind("opportunity")
	require.True(t, ok)
	require.Equal(t, KindOpportunity, kind)
	require.True(t, kind.Relatable())

	kind, ok = ParseEntityKind("user")
	require.True(t, ok)
	require.False(t, kind.Relatable())

	_, ok = ParseEntityKind("invoice")
	require.False(t, ok)
}

func TestNewPage(t *testing.T) {
	require.Equal(t, Page{Page: 1, Limit: 1}, NewPage(0, 0))
	require.Equal(t, Page{Page: 3, Limit: MaxLimit}, NewPage(3, 500))
	require.Equal(t, 20, NewPage(3, 10).Offset())
}

func TestNewPageResult_EmptyDataIsArray(t *testing.T) {
	b, err := json.Marshal(NewPageResult[Lead](nil, 0, NewPage(1, 10)))
	require.NoError(t, err)
	require.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":10}`, string(b))
}

func TestDate(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01"`), &d))
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2024-06-02T23:30:00Z"`), &d))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-06-02"`, string(b))

	require.Error(t, json.Unmarshal([]byte(`"June 1st"`), &d))
}
