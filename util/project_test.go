// util/project_test.go
package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gimme-oss/gimme/util"
)

func TestProjectFromField(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "URL with project parameter",
			value: "https://console.cloud.google.com/home/dashboard?project=test-project",
			want:  "test-project",
		},
		{
			name:  "URL with encoded project parameter",
			value: "https://console.cloud.google.com/home/dashboard?project=abc%20def",
			want:  "abc+def",
		},
		{
			name:  "URL with project among other parameters",
			value: "https://console.cloud.google.com/iam-admin/iam?authuser=1&project=test-project&supportedpurview=project",
			want:  "test-project",
		},
		{
			name:  "URL without project parameter",
			value: "https://console.cloud.google.com/home/dashboard?folder=true",
			want:  "",
		},
		{
			name:  "URL with no query string",
			value: "https://console.cloud.google.com/home/dashboard",
			want:  "",
		},
		{
			name:  "bare project ID",
			value: "test-project",
			want:  "test-project",
		},
		{
			// Arbitrary non-URL input is deliberately let through; the
			// policy store is the one that rejects bogus project IDs.
			name:  "arbitrary non-URL string",
			value: "not a project at all",
			want:  "not+a+project+at+all",
		},
		{
			name:  "empty input",
			value: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, util.ProjectFromField(tt.value))
		})
	}
}
