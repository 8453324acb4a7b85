package clients

import (
	"testing"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    sdk.UpdateClientInput
		wantErr bool
	}{
		{
			name: "phone only",
			args: []string{"--phone", "555-0199"},
			want: sdk.UpdateClientInput{Phone: sdk.Ptr("555-0199")},
		},
		{
			name: "unlink lead",
			args: []string{"--linked-lead", ""},
			want: sdk.UpdateClientInput{LinkedLeadID: sdk.Ptr("")},
		},
		{
			name: "manager and company",
			args: []string{"--manager", "u-2", "--company", "Initech"},
			want: sdk.UpdateClientInput{CompanyName: sdk.Ptr("Initech"), AssignedManagerID: sdk.Ptr("u-2")},
		},
		{
			name:    "nothing",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&updateCompany, "company", "", "")
			flags.StringVar(&updateContact, "contact", "", "")
			flags.StringVar(&updateEmail, "email", "", "")
			flags.StringVar(&updatePhone, "phone", "", "")
			flags.StringVar(&updateLinkedLead, "linked-lead", "", "")
			flags.StringVar(&updateManager, "manager", "", "")
			require.NoError(t, flags.Parse(tt.args))

			got, err := updateInput(flags)
			if tt.wantErr {
				assert.ErrorContains(t, err, "nothing to update")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
