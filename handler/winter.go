package handler

import (
	"context"
	"fmt"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
)

// Winter parameter names.
const (
	WinterInputImage  = "图片"
	WinterOutputImage = "入冬后"
)

// WinterModel is the Replicate controlnet model that restyles the photo.
const WinterModel = "usamaehsan/controlnet-1.1-x-realistic-vision-v2.0:51778c7522eb99added82c0c52873d7a391eecf5fcc3ac7856613b7e6443f2f7"

const (
	// WinterPrompt describes the snowfall applied to the input photo.
	WinterPrompt = "During the day, it snowed and the snow was falling, covering the objects in the picture."

	// WinterNegativePrompt steers the diffusion model away from common artifacts.
	WinterNegativePrompt = "(deformed iris, deformed pupils, semi-realistic, cgi, 3d, render, sketch, cartoon, drawing, anime:1.4), text, close up, cropped, out of frame, worst quality, low quality, jpeg artifacts, ugly, duplicate, morbid, mutilated, extra fingers, mutated hands, poorly drawn hands, poorly drawn face, mutation, deformed, blurry, dehydrated, bad anatomy, bad proportions, extra limbs, cloned face, disfigured, gross proportions, malformed limbs, missing arms, missing legs, extra arms, extra legs, fused fingers, too many fingers, long neck."
)

// Winter turns a photo into a snowy winter scene.
type Winter struct {
	env            Env
	transformer    dreamfuse.ImageTransformer
	Prompt         string
	NegativePrompt string
}

// NewWinter returns a Winter handler running on transformer.
func NewWinter(env Env, transformer dreamfuse.ImageTransformer) *Winter {
	return &Winter{
		env:            env.withDefaults(),
		transformer:    transformer,
		Prompt:         WinterPrompt,
		NegativePrompt: WinterNegativePrompt,
	}
}

// Handle restyles conf[图片] and returns the saved result under 入冬后.
func (w *Winter) Handle(ctx context.Context, conf Conf) (Result, error) {
	path, err := conf.String(WinterInputImage)
	if err != nil {
		return nil, err
	}
	url, err := w.env.Resolver.PublicURL(path)
	if err != nil {
		return nil, err
	}

	log := w.env.Logger.With("handler", "winter")
	log.Info("running winter transform", "image_url", url)

	resp, err := w.transformer.TransformImage(ctx, dreamfuse.TransformRequest{
		ImageURL:       url,
		Prompt:         w.Prompt,
		NegativePrompt: w.NegativePrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("winter transform: %w", err)
	}
	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("winter transform: %w", dreamfuse.ErrEmptyResponse)
	}
	// Controlnet models list the control map before the rendered image
	img := resp.Images[len(resp.Images)-1]

	out := media.RandomPath(w.env.OutputDir, "")
	if err := w.env.saveImage(ctx, img, out); err != nil {
		return nil, fmt.Errorf("save winter image: %w", err)
	}

	log.Info("winter image saved", "path", out)
	return Result{WinterOutputImage: out}, nil
}
