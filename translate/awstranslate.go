package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/aws/aws-sdk-go-v2/service/translate/types"
)

// TranslateAPI is the slice of the Amazon Translate client used by
// AWSTranslator. *awstranslate.Client satisfies it; tests substitute a fake.
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error)
}

// AWSTranslator is a Translator backed by Amazon Translate. The source
// language is always auto-detected.
type AWSTranslator struct {
	client TranslateAPI
}

// NewAWSTranslator connects to Amazon Translate using the default AWS
// credential chain.
func NewAWSTranslator(ctx context.Context, region string) (*AWSTranslator, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &AWSTranslator{client: awstranslate.NewFromConfig(cfg)}, nil
}

// NewAWSTranslatorWithClient wraps an existing client. Used by tests.
func NewAWSTranslatorWithClient(client TranslateAPI) *AWSTranslator {
	return &AWSTranslator{client: client}
}

func (t *AWSTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	out, err := t.client.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String("auto"),
		TargetLanguageCode: aws.String(targetLanguage),
	})
	if err != nil {
		return "", classify(err)
	}
	return aws.ToString(out.TranslatedText), nil
}

// classify wraps a provider failure in a ServiceError, marking throttling and
// transient service faults as retryable. Bad input (unsupported language
// pair, oversized text) is not.
func classify(err error) error {
	var (
		tooMany     *types.TooManyRequestsException
		internal    *types.InternalServerException
		unavailable *types.ServiceUnavailableException
	)
	retryable := errors.As(err, &tooMany) ||
		errors.As(err, &internal) ||
		errors.As(err, &unavailable)

	return &ServiceError{Message: "translate text", Cause: err, Retryable: retryable}
}
