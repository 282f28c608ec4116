package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
)

const DefaultURLValidity = 15 * time.Minute

// Signer turns a stored exercise video reference into a URL a client can play.
type Signer interface {
	VideoURL(ctx context.Context, ref string) (string, error)
}

type S3Params struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	URLValidity     time.Duration
}

type S3Signer struct {
	presignClient *s3.PresignClient
	bucket        string
	validity      time.Duration
}

func NewS3Signer(ctx context.Context, params S3Params) (*S3Signer, error) {
	if params.Bucket == "" {
		return nil, errors.New("media bucket not set")
	}
	if params.URLValidity <= 0 {
		params.URLValidity = DefaultURLValidity
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(params.Region),
	}
	if params.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(params.AccessKeyID, params.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if params.Endpoint != "" {
			// minio and other s3 compatible stores need path style addressing
			o.BaseEndpoint = aws.String(params.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Signer{
		presignClient: s3.NewPresignClient(client),
		bucket:        params.Bucket,
		validity:      params.URLValidity,
	}, nil
}

func (s *S3Signer) VideoURL(ctx context.Context, ref string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "media.s3.video_url")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ref == "" || IsAbsoluteURL(ref) {
		return ref, nil
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(s.validity))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", ref, err)
	}

	return req.URL, nil
}

// PassthroughSigner returns stored references unchanged, used when signing is disabled.
type PassthroughSigner struct{}

func (PassthroughSigner) VideoURL(_ context.Context, ref string) (string, error) {
	return ref, nil
}

func IsAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.IsAbs() && u.Host != ""
}
