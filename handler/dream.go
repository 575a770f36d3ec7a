package handler

import (
	"context"
	"fmt"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
	"github.com/spetersoncode/dreamfuse/retry"
)

// Dream parameter names.
const (
	DreamInputDescription = "梦境描述"
	DreamOutputReport     = "解梦报告"
	DreamOutputImage      = "梦境图像"
)

// ErrorImage is the placeholder returned when no dream image was produced.
const ErrorImage = "./error.png"

// User-facing replacements for content-policy rejections.
const (
	DreamImageBlockedMessage    = "您的梦境描述包含了一些敏感内容，无法生成图像。但这不影响解梦分析的结果。"
	DreamAnalysisBlockedMessage = "您的梦境描述包含了一些敏感内容，请调整描述后重试。"
)

const (
	dreamAnalysisMaxTokens = 1000
	dreamPromptMaxTokens   = 200
)

// Dream interprets a dream and paints it. The analysis is returned even when
// the image cannot be produced.
type Dream struct {
	env     Env
	chat    dreamfuse.ChatProvider
	images  dreamfuse.ImageProvider
	models  Models
	prompts Prompts
}

// DreamOption configures a Dream handler.
type DreamOption func(*Dream)

// WithDreamModels overrides the models used at each step.
func WithDreamModels(m Models) DreamOption {
	return func(d *Dream) {
		d.models = m
	}
}

// WithDreamPrompts overrides the prompt texts. Empty fields keep defaults.
func WithDreamPrompts(p Prompts) DreamOption {
	return func(d *Dream) {
		d.prompts = p.Merge(DefaultPrompts())
	}
}

// NewDream returns a Dream handler.
func NewDream(env Env, chat dreamfuse.ChatProvider, images dreamfuse.ImageProvider, opts ...DreamOption) *Dream {
	d := &Dream{
		env:     env.withDefaults(),
		chat:    chat,
		images:  images,
		models:  DefaultModels(),
		prompts: DefaultPrompts(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DreamOutcome records each stage of an interpretation.
type DreamOutcome struct {
	Analysis dreamfuse.Stage[string]
	Image    dreamfuse.Stage[dreamfuse.GeneratedImage]
}

// Handle interprets conf[梦境描述]. Provider failures never surface as an
// error: the report carries the message and the image falls back to
// ErrorImage. Only a missing description is returned as an error.
func (d *Dream) Handle(ctx context.Context, conf Conf) (Result, error) {
	description, err := conf.String(DreamInputDescription)
	if err != nil {
		return nil, err
	}

	log := d.env.Logger.With("handler", "dream")
	outcome := d.Interpret(ctx, description)

	analysis, err := outcome.Analysis.Get()
	if err != nil {
		log.Error("dream analysis failed", "error", err)
		msg := err.Error()
		if dreamfuse.IsContentPolicy(err) {
			msg = DreamAnalysisBlockedMessage
		}
		return dreamResult(msg, ErrorImage), nil
	}

	img, err := outcome.Image.Get()
	if err != nil {
		log.Warn("dream image failed, returning analysis only", "error", err)
		msg := err.Error()
		if dreamfuse.IsContentPolicy(err) {
			msg = DreamImageBlockedMessage
		}
		return dreamResult(fmt.Sprintf("[图像生成失败：%s]\n\n%s", msg, analysis), ErrorImage), nil
	}

	out := media.RandomPath(d.env.OutputDir, "")
	if err := d.env.saveImage(ctx, img, out); err != nil {
		log.Error("saving dream image failed", "error", err)
		return dreamResult("解梦过程中出现错误："+err.Error(), ErrorImage), nil
	}

	log.Info("dream interpreted", "path", out)
	return dreamResult(analysis, out), nil
}

func dreamResult(report, image string) Result {
	return Result{
		DreamOutputReport: report,
		DreamOutputImage:  image,
	}
}

// Interpret analyzes the dream and, when that succeeds, generates its image.
// The image stage is left empty when the analysis failed.
func (d *Dream) Interpret(ctx context.Context, description string) DreamOutcome {
	var outcome DreamOutcome

	outcome.Analysis = dreamfuse.StageOf(retry.Do(ctx, d.env.retryFor("dream", "analyze"), func() (string, error) {
		return d.analyze(ctx, description)
	}))
	if !outcome.Analysis.OK() {
		return outcome
	}

	outcome.Image = dreamfuse.StageOf(retry.Do(ctx, d.env.retryFor("dream", "image"), func() (dreamfuse.GeneratedImage, error) {
		return d.paint(ctx, description, outcome.Analysis.Value)
	}))
	return outcome
}

func (d *Dream) analyze(ctx context.Context, description string) (string, error) {
	resp, err := d.chat.Chat(ctx, []dreamfuse.Message{
		dreamfuse.SystemMessage(d.prompts.DreamSystem),
		dreamfuse.UserMessage(description),
	}, dreamfuse.WithModel(d.models.DreamChat), dreamfuse.WithMaxTokens(dreamAnalysisMaxTokens))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// paint writes an image prompt for the dream and renders it. Both calls are
// retried together.
func (d *Dream) paint(ctx context.Context, description, analysis string) (dreamfuse.GeneratedImage, error) {
	resp, err := d.chat.Chat(ctx, []dreamfuse.Message{
		dreamfuse.SystemMessage(d.prompts.DreamImageSystem),
		dreamfuse.UserMessage(fmt.Sprintf(d.prompts.DreamImageUser, description, analysis)),
	}, dreamfuse.WithModel(d.models.DreamChat), dreamfuse.WithMaxTokens(dreamPromptMaxTokens))
	if err != nil {
		return dreamfuse.GeneratedImage{}, err
	}

	images, err := d.images.GenerateImage(ctx, resp.Content,
		dreamfuse.WithImageModel(d.models.Image),
		dreamfuse.WithImageSize(dreamfuse.ImageSize1024x1024),
		dreamfuse.WithImageQuality(dreamfuse.ImageQualityStandard),
		dreamfuse.WithImageStyle(dreamfuse.ImageStyleVivid),
		dreamfuse.WithImageCount(1),
	)
	if err != nil {
		return dreamfuse.GeneratedImage{}, err
	}
	return firstImage(images)
}
