package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportObjectPath(t *testing.T) {
	p := ReportObjectPath(15, 2024, ".pdf")
	assert.True(t, strings.HasPrefix(p, "reports/unit-15/2024/"))
	assert.True(t, strings.HasSuffix(p, ".pdf"))
	assert.NotEqual(t, p, ReportObjectPath(15, 2024, ".pdf"))
}
