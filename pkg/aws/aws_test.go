package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUnwrapSNS(t *testing.T) {
	wrapped := `{"Type":"Notification","Message":"{\"event_type\":\"recall_issued\"}"}`
	assert.Equal(t, `{"event_type":"recall_issued"}`, UnwrapSNS(wrapped))
	assert.Equal(t, `{"event_type":"x"}`, UnwrapSNS(`{"event_type":"x"}`))
	assert.Equal(t, "not json", UnwrapSNS("not json"))
}

func TestMetricsClient_NilIsDisabled(t *testing.T) {
	var m *MetricsClient
	assert.False(t, m.IsEnabled())
	assert.NoError(t, m.RecordCount(context.Background(), MetricScanOutcome, nil))
	assert.NoError(t, m.RecordLatency(context.Background(), MetricHTTPLatency, time.Second, nil))
}

func TestS3Presigner_PresignPut(t *testing.T) {
	t.Setenv("AWS_ENDPOINT", "")
	cfg := sdkaws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
	}
	p := NewS3Presigner(cfg, "scan-images")

	url, headers, err := p.PresignPut(context.Background(), "scans/user-1/abc.jpg", "image/jpeg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "scans/user-1/abc.jpg")
	assert.Contains(t, url, "X-Amz-Signature")
	assert.NotEmpty(t, headers)
}

type stubSQS struct {
	messages []types.Message
	deleted  []string
}

func (s *stubSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{Messages: s.messages}, nil
}

func (s *stubSQS) DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	s.deleted = append(s.deleted, sdkaws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSQSConsumer_PollOnceKeepsFailedMessages(t *testing.T) {
	stub := &stubSQS{messages: []types.Message{
		{Body: sdkaws.String("ok"), ReceiptHandle: sdkaws.String("r1")},
		{Body: sdkaws.String("boom"), ReceiptHandle: sdkaws.String("r2")},
		{Body: sdkaws.String(""), ReceiptHandle: sdkaws.String("r3")},
	}}
	c := NewSQSConsumerWithClient(stub, "queue", zap.NewNop())

	err := c.PollOnce(context.Background(), func(ctx context.Context, body string) error {
		if body == "boom" {
			return errors.New("handler failed")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, stub.deleted)
}
