package handler

// Prompts holds the instruction texts sent to the chat models. Defaults are
// the platform's Chinese prompts; config may override any of them.
type Prompts struct {
	DescribeSystem string `yaml:"describe_system"`
	DescribeUser   string `yaml:"describe_user"`

	// FusionUser is a format string taking the first description, the
	// second description and the user's request.
	FusionSystem string `yaml:"fusion_system"`
	FusionUser   string `yaml:"fusion_user"`

	DreamSystem string `yaml:"dream_system"`

	// DreamImageUser is a format string taking the dream and its analysis.
	DreamImageSystem string `yaml:"dream_image_system"`
	DreamImageUser   string `yaml:"dream_image_user"`
}

// DefaultPrompts returns the built-in prompt texts.
func DefaultPrompts() Prompts {
	return Prompts{
		DescribeSystem: "你是一个专业的图像分析专家，请尽可能详细和精确地描述图片。注意以下几点：\n" +
			"1. 主体内容：准确描述主要对象的位置、大小、形状和颜色\n" +
			"2. 细节特征：描述重要的细节，如纹理、材质、光影效果\n" +
			"3. 空间关系：说明各个元素之间的位置关系\n" +
			"4. 环境背景：描述场景的整体氛围和环境特征\n" +
			"5. 风格特点：分析图片的艺术风格或拍摄风格",
		DescribeUser: "请对这张图片进行极其详细的分析和描述，包括：\n" +
			"1. 图片的主要内容是什么？\n" +
			"2. 主体的具体特征如何（颜色、形状、材质等）？\n" +
			"3. 主体的位置在哪里，与其他元素的关系如何？\n" +
			"4. 背景环境有什么特点？\n" +
			"5. 光线和氛围如何？\n" +
			"6. 有什么独特或显著的细节？\n\n" +
			"请尽可能精确地描述每个细节，不要遗漏任何重要信息。",
		FusionSystem: "你是一个专业的图像提示词专家，擅长将描述转换为DALL-E可用的精确提示词。请生成详细、富有创意且高质量的提示词。",
		FusionUser: "基于以下内容生成一个详细的DALL-E提示词：\n\n" +
			"图片1描述：%s\n\n图片2描述：%s\n\n用户需求：%s\n\n" +
			"请生成一个能够很好融合这些元素的英文提示词。注重细节描述，包括风格、氛围、光线等要素。",
		DreamSystem: "你是一位专业的梦境心理分析专家，擅长从心理学角度解读梦境。请按以下结构解析梦境：\n\n" +
			"1. 概述：总体解读，揭示潜意识情绪和心理状态\n" +
			"2. 主题概述：分析梦的主题和现实关联\n" +
			"3. 关键符号：解读梦中关键符号的象征意义\n" +
			"4. 情感景观：分析梦中的情绪氛围\n" +
			"5. 潜在含义：揭示深层心理动机\n" +
			"6. 反思点：提供反思性问题\n" +
			"7. 总结：总结启示和建议",
		DreamImageSystem: "你是一位专业的DALL-E提示词专家。请将用户的梦境描述转换为详细的图像生成提示词。\n" +
			"注意：\n" +
			"1. 提示词应该富有艺术感和想象力\n" +
			"2. 包含场景、氛围、光线等细节\n" +
			"3. 使用简洁的英文描述\n" +
			"4. 确保提示词能捕捉梦境的超现实感",
		DreamImageUser: "梦境描述：%s\n\n心理分析：%s\n\n请生成一个能够捕捉这个梦境场景的DALL-E提示词。",
	}
}

// Merge returns p with every empty field taken from defaults.
func (p Prompts) Merge(defaults Prompts) Prompts {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.DescribeSystem, defaults.DescribeSystem)
	fill(&p.DescribeUser, defaults.DescribeUser)
	fill(&p.FusionSystem, defaults.FusionSystem)
	fill(&p.FusionUser, defaults.FusionUser)
	fill(&p.DreamSystem, defaults.DreamSystem)
	fill(&p.DreamImageSystem, defaults.DreamImageSystem)
	fill(&p.DreamImageUser, defaults.DreamImageUser)
	return p
}

// Models names the model used at each step. Empty fields leave the
// provider's default in place.
type Models struct {
	Vision     string `yaml:"vision"`
	FusionChat string `yaml:"fusion_chat"`
	DreamChat  string `yaml:"dream_chat"`
	Image      string `yaml:"image"`
}

// DefaultModels returns the models the platform handlers were tuned for.
func DefaultModels() Models {
	return Models{
		Vision:     "gpt-4o",
		FusionChat: "gpt-4o-mini",
		DreamChat:  "gpt-4o-mini",
		Image:      "dall-e-3",
	}
}
