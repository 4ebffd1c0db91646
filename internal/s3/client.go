// Package s3 предоставляет доступ к трекам, хранящимся в Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Scheme - префикс путей к объектам S3
const Scheme = "s3://"

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// Client обертка над клиентом S3 для одного бакета
type Client struct {
	s3Client *s3.S3
	config   *Config
}

// NewClient создает новый клиент S3
func NewClient(config *Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		)
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// Bucket возвращает имя бакета
func (c *Client) Bucket() string {
	return c.config.BucketName
}

// ListKeys возвращает ключи объектов под префиксом с подходящими расширениями
func (c *Client) ListKeys(ctx context.Context, prefix string, extensions []string) ([]string, error) {
	var keys []string

	err := c.s3Client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.config.BucketName),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, object := range page.Contents {
			key := aws.StringValue(object.Key)
			if hasExtension(key, extensions) {
				keys = append(keys, key)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка объектов S3: %w", err)
	}
	return keys, nil
}

// FetchHead загружает первые n байт объекта. Если объект короче, возвращает его целиком.
func (c *Client) FetchHead(ctx context.Context, key string, n int64) ([]byte, error) {
	out, err := c.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
		Range:  aws.String(fmt.Sprintf("bytes=0-%d", n-1)),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки объекта %s: %w", key, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(io.LimitReader(out.Body, n))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения объекта %s: %w", key, err)
	}
	return content, nil
}

// PresignGet возвращает временную ссылку на объект для потокового чтения
func (c *Client) PresignGet(key string, ttl time.Duration) (string, error) {
	req, _ := c.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	url, err := req.Presign(ttl)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи ссылки на %s: %w", key, err)
	}
	return url, nil
}

// Path формирует путь трека вида s3://bucket/key
func (c *Client) Path(key string) string {
	return Scheme + c.config.BucketName + "/" + key
}

// ParsePath разбирает путь вида s3://bucket/key
func ParsePath(p string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(p, Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func hasExtension(key string, extensions []string) bool {
	ext := strings.ToLower(path.Ext(key))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
