package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-cloudops/cloud-comply/internal/models"
)

func TestTextSink_PassAndWarnCounters(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf)

	s.Emit(models.Finding{Outcome: models.OutcomePass, Message: "instance i-1 has a profile"})
	s.Emit(models.Finding{Outcome: models.OutcomeWarn, Message: "volume vol-1 is not encrypted"})
	s.Emit(models.Finding{Outcome: models.OutcomePass, Message: "volume vol-2 is encrypted"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Secure: instance i-1 has a profile [1 Pass]", lines[0])
	assert.Equal(t, "Warning: volume vol-1 is not encrypted [1 Warning]", lines[1])
	assert.Equal(t, "Secure: volume vol-2 is encrypted [2 Passes]", lines[2])
}

func TestTextSink_ErrorLineHasNoCounter(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf)

	s.Emit(models.Finding{Outcome: models.OutcomeError, Message: "collaborator: list volumes: timeout"})

	assert.Equal(t, "Error: collaborator: list volumes: timeout\n", buf.String())
}

func TestTextSink_RemediationHint(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf)
	s.ShowRemediation = true

	s.Emit(models.Finding{
		Outcome:     models.OutcomeWarn,
		Message:     "volume vol-1 is not encrypted",
		Remediation: "aws ec2 create-snapshot --volume-id vol-1",
	})

	assert.Contains(t, buf.String(), "  remediation: aws ec2 create-snapshot --volume-id vol-1\n")
}

func TestTextSink_Colored(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf)
	s.Colored = true

	s.Emit(models.Finding{Outcome: models.OutcomePass, Message: "ok"})

	assert.True(t, strings.HasPrefix(buf.String(), "\033[0;32mSecure\033[0m: "))
}

func TestJSONLSink_OneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONLSink(&buf)

	s.Emit(models.Finding{RuleID: "A", ResourceID: "x", Outcome: models.OutcomePass})
	s.Emit(models.Finding{RuleID: "B", ResourceID: "y", Outcome: models.OutcomeWarn})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var f models.Finding
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &f))
	assert.Equal(t, "B", f.RuleID)
	assert.Equal(t, models.OutcomeWarn, f.Outcome)
}

func TestMultiSink_FansOutInOrder(t *testing.T) {
	collect := &CollectSink{}
	var buf bytes.Buffer
	multi := NewMultiSink(collect, NewTextSink(&buf))

	multi.Emit(models.Finding{Outcome: models.OutcomePass, Message: "ok"})

	require.Len(t, collect.Findings(), 1)
	assert.NotEmpty(t, buf.String())
}
