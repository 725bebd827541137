// util/domain_test.go
package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gimme-oss/gimme/util"
)

func TestValidDomain(t *testing.T) {
	allowed := []string{"example.com"}

	assert.True(t, util.ValidDomain("example.com", allowed))
	assert.False(t, util.ValidDomain("example.org", allowed))
	assert.False(t, util.ValidDomain("", allowed))

	// No configured domains means nobody gets in.
	assert.False(t, util.ValidDomain("example.com", nil))
	assert.False(t, util.ValidDomain("example.com", []string{}))

	// No substring or suffix matching.
	assert.False(t, util.ValidDomain("sub.example.com", allowed))
	assert.False(t, util.ValidDomain("example.com.evil.net", allowed))
}
