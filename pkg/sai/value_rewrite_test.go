package sai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
)

func offsetBy(delta sai.ObjectID) func(sai.ObjectID) (sai.ObjectID, error) {
	return func(id sai.ObjectID) (sai.ObjectID, error) {
		return id + delta, nil
	}
}

func TestRewriteObjectRefsObjectID(t *testing.T) {
	v := sai.Value{Type: sai.SerializationObjectID, OID: 10}
	out, err := v.RewriteObjectRefs(offsetBy(1))
	require.NoError(t, err)
	require.Equal(t, sai.ObjectID(11), out.OID)
}

func TestRewriteObjectRefsObjectList(t *testing.T) {
	v := sai.Value{Type: sai.SerializationObjectList, OIDs: []sai.ObjectID{1, 2, 3}}
	out, err := v.RewriteObjectRefs(offsetBy(100))
	require.NoError(t, err)
	require.Equal(t, []sai.ObjectID{101, 102, 103}, out.OIDs)
}

func TestRewriteObjectRefsACLFieldData(t *testing.T) {
	v := sai.Value{
		Type: sai.SerializationACLFieldData,
		ACLField: sai.ACLFieldData{
			Enable: true,
			Data:   5,
			List:   []sai.ObjectID{7, 8},
		},
	}
	out, err := v.RewriteObjectRefs(offsetBy(1000))
	require.NoError(t, err)
	require.Equal(t, sai.ObjectID(1005), out.ACLField.Data)
	require.Equal(t, []sai.ObjectID{1007, 1008}, out.ACLField.List)
	require.True(t, out.ACLField.Enable)
}

func TestRewriteObjectRefsNonReferenceTypeIsUnchanged(t *testing.T) {
	v := sai.Value{Type: sai.SerializationUint32, U32: 42}
	out, err := v.RewriteObjectRefs(offsetBy(1))
	require.NoError(t, err)
	require.Equal(t, uint32(42), out.U32)
}

func TestRewriteObjectRefsPropagatesError(t *testing.T) {
	v := sai.Value{Type: sai.SerializationObjectID, OID: 1}
	_, err := v.RewriteObjectRefs(func(sai.ObjectID) (sai.ObjectID, error) {
		return 0, sai.StatusFailure
	})
	require.Error(t, err)
}
