package jsonx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "single object",
			in:   `{"result":0}`,
			want: `{"result":0}`,
		},
		{
			name: "two concatenated objects",
			in:   `{"result":7}{"result":0,"username":"abc123xyz0"}`,
			want: `{"result":0,"username":"abc123xyz0"}`,
		},
		{
			name: "leading garbage",
			in:   `oops, retry{"result":0}`,
			want: `{"result":0}`,
		},
		{
			name: "nested object in tail",
			in:   `{"a":1}{"result":0,"extra":{"x":1}}`,
			want: `{"result":0,"extra":{"x":1}}`,
		},
		{
			name: "trailing whitespace",
			in:   `{"result":0}` + "\r\n",
			want: `{"result":0}`,
		},
		{
			name:    "no object at all",
			in:      `not json`,
			wantErr: true,
		},
		{
			name:    "truncated object",
			in:      `{"result":`,
			wantErr: true,
		},
		{
			name:    "empty input",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LastObject([]byte(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoObject)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(got, &decoded))
		})
	}
}
