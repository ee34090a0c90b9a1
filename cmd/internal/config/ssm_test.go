package config

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedSSM serves pages in order, chaining them through NextToken.
type pagedSSM struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (p *pagedSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if p.err != nil {
		return nil, p.err
	}

	if !aws.ToBool(in.WithDecryption) {
		return nil, errors.New("decryption not requested")
	}

	idx := p.calls
	p.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: p.pages[idx]}
	if idx+1 < len(p.pages) {
		out.NextToken = aws.String("page-" + string(rune('a'+idx)))
	}
	return out, nil
}

func param(name, value string) types.Parameter {
	return types.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestExportParameters(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	client := &pagedSSM{pages: [][]types.Parameter{
		{param("/cloudnotes/prod/JWT_SECRET", "from-parameter-store"), param("/cloudnotes/prod/", "ignored")},
		{param("/cloudnotes/prod/PORT", "9090")},
		{param("/cloudnotes/prod/DATABASE_URL", "/data/notes.db")},
	}}

	count, err := ExportParameters(context.Background(), client, DefaultSSMPrefix)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, "from-parameter-store", os.Getenv("JWT_SECRET"))
	assert.Equal(t, "9090", os.Getenv("PORT"))
	assert.Equal(t, "/data/notes.db", os.Getenv("DATABASE_URL"))
}

func TestExportParameters_Error(t *testing.T) {
	_, err := ExportParameters(context.Background(), &pagedSSM{err: errors.New("denied")}, DefaultSSMPrefix)
	assert.ErrorContains(t, err, "denied")
}
