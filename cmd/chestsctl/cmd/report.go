package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
)

const (
	reportBucketFlag   = "report-bucket"
	reportKeyFlag      = "report-key"
	reportEndpointFlag = "report-endpoint"
)

// reportTarget is where an audit report is archived.
type reportTarget struct {
	Bucket   string
	Key      string
	Endpoint string
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String(reportBucketFlag, "", "Upload the audit report to this S3 bucket; credentials come from the standard AWS environment")
	cmd.Flags().String(reportKeyFlag, "", "Object key of the uploaded report (default audit/<recipient>-<unix time>.json)")
	cmd.Flags().String(reportEndpointFlag, "", "Endpoint of an S3 compatible store; path-style addressing is used when set")
}

func reportTargetFromFlags(cmd *cobra.Command, recipient string) (*reportTarget, error) {
	bucket, err := cmd.Flags().GetString(reportBucketFlag)
	if err != nil || bucket == "" {
		return nil, err
	}
	key, err := cmd.Flags().GetString(reportKeyFlag)
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = fmt.Sprintf("audit/%s-%d.json", recipient, time.Now().Unix())
	}
	endpoint, err := cmd.Flags().GetString(reportEndpointFlag)
	if err != nil {
		return nil, err
	}
	return &reportTarget{Bucket: bucket, Key: key, Endpoint: endpoint}, nil
}

// uploadReport stores report as JSON at target and returns its location.
func uploadReport(ctx context.Context, target reportTarget, report any) (string, error) {
	bz, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if target.Endpoint != "" {
			o.BaseEndpoint = aws.String(target.Endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client)
	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(target.Bucket),
		Key:         aws.String(target.Key),
		ContentType: aws.String("application/json"),
		Body:        bytes.NewReader(bz),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	return result.Location, nil
}
