package sdk_test

import (
	"testing"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	leads := []sdk.Lead{
		{ID: "1", Name: "Alpha", Status: sdk.LeadStatusNew, AssignedTo: sdk.UserRef{Email: "ana@example.com"}},
		{ID: "2", Name: "Beta", Status: sdk.LeadStatusWon, AssignedTo: sdk.UserRef{Email: "bo@example.com"}},
		{ID: "3", Name: "Gamma", Status: sdk.LeadStatusNew, AssignedTo: sdk.UserRef{Email: "bo@example.com"}},
	}

	tests := []struct {
		name    string
		expr    string
		wantIDs []string
	}{
		{name: "empty matches all", expr: "", wantIDs: []string{"1", "2", "3"}},
		{name: "by status", expr: `status == "NEW"`, wantIDs: []string{"1", "3"}},
		{name: "nested field", expr: `assignedTo.email == "bo@example.com"`, wantIDs: []string{"2", "3"}},
		{name: "conjunction", expr: `status == "NEW" and assignedTo.email == "bo@example.com"`, wantIDs: []string{"3"}},
		{name: "unknown field matches nothing", expr: `nope == "x"`, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := sdk.ParseFilter(tt.expr)
			require.NoError(t, err)

			ids := []string{}
			for _, l := range sdk.Apply(f, leads) {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	_, err := sdk.ParseFilter(`status ==`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
}
