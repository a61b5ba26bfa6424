package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleContractsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists contracts as JSON", func(t *testing.T) {
		svc := &mockContractService{contracts: []domain.Contract{
			sampleContract("1", "Maria", domain.StatusScheduled, domain.PaymentPending),
			sampleContract("2", "Ana", domain.StatusApproved, domain.PaymentPaid),
		}}
		server := newTestServer(t, svc)

		result, err := server.handleContractsResource(ctx, readRequest("ensaio://contracts"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "ensaio://contracts", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got []ContractOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Ana", got[1].ClientName)
	})

	t.Run("empty collection is an empty array", func(t *testing.T) {
		server := newTestServer(t, &mockContractService{})

		result, err := server.handleContractsResource(ctx, readRequest("ensaio://contracts"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("service error", func(t *testing.T) {
		server := newTestServer(t, &mockContractService{err: errors.New("boom")})

		_, err := server.handleContractsResource(ctx, readRequest("ensaio://contracts"))
		assert.ErrorContains(t, err, "boom")
	})
}

func TestServer_handleContractResource(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		c := sampleContract("abc", "Maria", domain.StatusScheduled, domain.PaymentPending)
		svc := &mockContractService{contract: &c}
		server := newTestServer(t, svc)

		result, err := server.handleContractResource(ctx, readRequest("ensaio://contracts/abc"))

		require.NoError(t, err)
		assert.Equal(t, "abc", svc.lastID)

		var got ContractOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, "C-abc", got.ContractCode)
	})

	t.Run("not found", func(t *testing.T) {
		server := newTestServer(t, &mockContractService{err: domain.ErrNotFound})

		_, err := server.handleContractResource(ctx, readRequest("ensaio://contracts/zzz"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed uri", func(t *testing.T) {
		svc := &mockContractService{}
		server := newTestServer(t, svc)

		_, err := server.handleContractResource(ctx, readRequest("ensaio://contracts/"))
		require.Error(t, err)
		assert.Empty(t, svc.calls)
	})
}

func TestExtractContractID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"ensaio://contracts/abc-123", "abc-123"},
		{"ensaio://contracts/", ""},
		{"ensaio://contracts", ""},
		{"ensaio://contracts/a/b", ""},
		{"other://contracts/abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractContractID(tt.uri))
		})
	}
}
