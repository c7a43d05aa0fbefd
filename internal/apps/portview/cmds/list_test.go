package portview

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xa1bed0/deskutils/internal/ports"
)

type stubEnumerator struct {
	records []ports.Record
	err     error
}

func (s stubEnumerator) Enumerate(context.Context) ([]ports.Record, error) {
	return s.records, s.err
}

func dataLines(out string) []string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header and separator
	return lines[2:]
}

func TestListPortsSortsNumerically(t *testing.T) {
	enum := stubEnumerator{records: []ports.Record{
		{Protocol: ports.ProtocolTCP, Port: 8080, PID: 10, ProcessName: "web"},
		{Protocol: ports.ProtocolUDP, Port: 53, PID: 2, ProcessName: "dns"},
		{Protocol: ports.ProtocolTCP, Port: 443, PID: 3, ProcessName: "proxy"},
	}}

	var buf bytes.Buffer
	err := listPorts(context.Background(), &buf, enum, listOptions{sortBy: "port", numeric: true})
	require.NoError(t, err)

	lines := dataLines(buf.String())
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "dns")
	assert.Contains(t, lines[1], "proxy")
	assert.Contains(t, lines[2], "web")
	assert.Contains(t, buf.String(), "Process Name")
}

func TestListPortsLexicalDescending(t *testing.T) {
	enum := stubEnumerator{records: []ports.Record{
		{Protocol: ports.ProtocolTCP, Port: 9, PID: 1, ProcessName: "nine"},
		{Protocol: ports.ProtocolTCP, Port: 10, PID: 2, ProcessName: "ten"},
	}}

	var buf bytes.Buffer
	err := listPorts(context.Background(), &buf, enum, listOptions{sortBy: "PORT", descending: true})
	require.NoError(t, err)

	lines := dataLines(buf.String())
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "nine")
	assert.Contains(t, lines[1], "ten")
}

func TestListPortsRendersPartialRowsOnError(t *testing.T) {
	enum := stubEnumerator{
		records: []ports.Record{{Protocol: ports.ProtocolTCP, Port: 22, PID: 1, ProcessName: "sshd"}},
		err:     errors.New("resolve process 7: no such process"),
	}

	var buf bytes.Buffer
	err := listPorts(context.Background(), &buf, enum, listOptions{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "sshd")
}

func TestListPortsEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := listPorts(context.Background(), &buf, stubEnumerator{records: []ports.Record{}}, listOptions{})
	require.NoError(t, err)
	assert.Equal(t, "No listening ports found\n", buf.String())
}

func TestListPortsRejectsUnknownColumn(t *testing.T) {
	var buf bytes.Buffer
	err := listPorts(context.Background(), &buf, stubEnumerator{}, listOptions{sortBy: "owner"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner")
	assert.Empty(t, buf.String())
}
