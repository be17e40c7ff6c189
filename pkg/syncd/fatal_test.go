package syncd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFatalCallsExitFunc(t *testing.T) {
	orig := exitFunc
	defer func() { exitFunc = orig }()

	var gotCode int
	called := false
	exitFunc = func(code int) {
		called = true
		gotCode = code
	}

	Fatal(nil, errors.New("boom"))
	require.True(t, called)
	require.Equal(t, 1, gotCode)
}

func TestSplitKeyParsesKindAndRef(t *testing.T) {
	kind, ref, err := splitKey("port:0000000000000001")
	require.NoError(t, err)
	require.Equal(t, "0000000000000001", ref)
	require.Equal(t, "port", kind.String())
}

func TestSplitKeyRejectsMalformedKey(t *testing.T) {
	_, _, err := splitKey("no-colon-here")
	require.Error(t, err)
}

func TestSplitKeyRejectsUnknownKind(t *testing.T) {
	_, _, err := splitKey("NOT_A_REAL_KIND:abc")
	require.Error(t, err)
}
