package handler

import (
	"context"
	"fmt"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/fanout"
	"github.com/spetersoncode/dreamfuse/media"
	"github.com/spetersoncode/dreamfuse/retry"
)

// Fusion parameter names.
const (
	FusionInputFirst  = "图片1"
	FusionInputSecond = "图片2"
	FusionInputPrompt = "融合描述"
	FusionOutputImage = "生成图片"
)

// Token limits per step.
const (
	describeMaxTokens = 1000
	fusionMaxTokens   = 500
)

// Fusion merges two pictures into a new generated image guided by a text
// request. The first picture is the main style source.
type Fusion struct {
	env     Env
	vision  dreamfuse.ChatProvider
	writer  dreamfuse.ChatProvider
	images  dreamfuse.ImageProvider
	models  Models
	prompts Prompts
}

// FusionOption configures a Fusion handler.
type FusionOption func(*Fusion)

// WithFusionModels overrides the models used at each step.
func WithFusionModels(m Models) FusionOption {
	return func(f *Fusion) {
		f.models = m
	}
}

// WithFusionPrompts overrides the prompt texts. Empty fields keep defaults.
func WithFusionPrompts(p Prompts) FusionOption {
	return func(f *Fusion) {
		f.prompts = p.Merge(DefaultPrompts())
	}
}

// WithPromptWriter uses a separate chat provider to write the image prompt.
func WithPromptWriter(writer dreamfuse.ChatProvider) FusionOption {
	return func(f *Fusion) {
		f.writer = writer
	}
}

// NewFusion returns a Fusion handler. vision describes the inputs and, unless
// WithPromptWriter is given, also writes the image prompt.
func NewFusion(env Env, vision dreamfuse.ChatProvider, images dreamfuse.ImageProvider, opts ...FusionOption) *Fusion {
	f := &Fusion{
		env:     env.withDefaults(),
		vision:  vision,
		writer:  vision,
		images:  images,
		models:  DefaultModels(),
		prompts: DefaultPrompts(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FusionReport carries the intermediate texts of a successful run.
type FusionReport struct {
	FirstDescription  string
	SecondDescription string
	ImagePrompt       string
	ImageURL          string
}

// Handle downloads both inputs, fuses them and returns the saved image under
// 生成图片. Intermediate files never outlive the call; on failure the output
// file is removed too and the error reads "处理失败: <cause>".
func (f *Fusion) Handle(ctx context.Context, conf Conf) (Result, error) {
	first, err := conf.String(FusionInputFirst)
	if err != nil {
		return nil, err
	}
	second, err := conf.String(FusionInputSecond)
	if err != nil {
		return nil, err
	}
	request, err := conf.String(FusionInputPrompt)
	if err != nil {
		return nil, err
	}

	log := f.env.Logger.With("handler", "fusion")
	temps := &media.TempFiles{}
	defer func() {
		if err := temps.RemoveAll(); err != nil {
			log.Warn("temp file cleanup failed", "error", err)
		}
	}()

	localFirst, err := f.download(ctx, temps, first)
	if err != nil {
		return nil, err
	}
	localSecond, err := f.download(ctx, temps, second)
	if err != nil {
		return nil, err
	}

	out := temps.Track(media.RandomPath(f.env.OutputDir, ""))
	report, err := f.Process(ctx, localFirst, localSecond, request, out)
	if err != nil {
		log.Error("fusion failed", "error", err)
		return nil, fmt.Errorf("处理失败: %w", err)
	}
	temps.Keep(out)

	log.Info("fusion image saved", "path", out, "image_prompt", report.ImagePrompt)
	return Result{FusionOutputImage: out}, nil
}

func (f *Fusion) download(ctx context.Context, temps *media.TempFiles, path string) (string, error) {
	url, err := f.env.Resolver.PublicURL(path)
	if err != nil {
		return "", err
	}
	local := temps.Track(media.RandomPath(f.env.TempDir, ""))
	if err := f.env.Fetcher.SaveImage(ctx, url, local); err != nil {
		return "", err
	}
	return local, nil
}

// Process runs the fusion pipeline on two local images and writes the result
// to out.
func (f *Fusion) Process(ctx context.Context, first, second, request, out string) (*FusionReport, error) {
	describe := retry.Wrap(f.env.retryFor("fusion", "describe"), f.describe)
	firstDesc, secondDesc, err := fanout.FetchPair(ctx, describe, first, describe, second)
	if err != nil {
		return nil, fmt.Errorf("describe images: %w", err)
	}

	prompt, err := f.imagePrompt(ctx, firstDesc, secondDesc, request)
	if err != nil {
		return nil, fmt.Errorf("write image prompt: %w", err)
	}

	img, err := retry.Do(ctx, f.env.retryFor("fusion", "generate"), func() (dreamfuse.GeneratedImage, error) {
		return f.generate(ctx, prompt)
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	_, err = retry.Do(ctx, f.env.retryFor("fusion", "save"), func() (struct{}, error) {
		return struct{}{}, f.env.saveImage(ctx, img, out)
	})
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	return &FusionReport{
		FirstDescription:  firstDesc,
		SecondDescription: secondDesc,
		ImagePrompt:       prompt,
		ImageURL:          img.URL,
	}, nil
}

// describe asks the vision model for a detailed description of a local image.
func (f *Fusion) describe(ctx context.Context, path string) (string, error) {
	b64, err := media.EncodeJPEGBase64(path)
	if err != nil {
		return "", err
	}

	resp, err := f.vision.Chat(ctx, []dreamfuse.Message{
		dreamfuse.SystemMessage(f.prompts.DescribeSystem),
		dreamfuse.UserParts(
			dreamfuse.NewTextPart(f.prompts.DescribeUser),
			dreamfuse.NewImageBase64Part(b64, "image/jpeg").WithDetail(dreamfuse.ImageDetailHigh),
		),
	}, dreamfuse.WithModel(f.models.Vision), dreamfuse.WithMaxTokens(describeMaxTokens))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (f *Fusion) imagePrompt(ctx context.Context, firstDesc, secondDesc, request string) (string, error) {
	resp, err := f.writer.Chat(ctx, []dreamfuse.Message{
		dreamfuse.SystemMessage(f.prompts.FusionSystem),
		dreamfuse.UserMessage(fmt.Sprintf(f.prompts.FusionUser, firstDesc, secondDesc, request)),
	}, dreamfuse.WithModel(f.models.FusionChat), dreamfuse.WithMaxTokens(fusionMaxTokens))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (f *Fusion) generate(ctx context.Context, prompt string) (dreamfuse.GeneratedImage, error) {
	resp, err := f.images.GenerateImage(ctx, prompt,
		dreamfuse.WithImageModel(f.models.Image),
		dreamfuse.WithImageSize(dreamfuse.ImageSize1024x1024),
		dreamfuse.WithImageStyle(dreamfuse.ImageStyleVivid),
		dreamfuse.WithImageCount(1),
	)
	if err != nil {
		return dreamfuse.GeneratedImage{}, err
	}
	return firstImage(resp)
}
