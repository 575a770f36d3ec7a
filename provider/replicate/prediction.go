package replicate

import (
	"fmt"

	"github.com/replicate/replicate-go"
	"github.com/spetersoncode/dreamfuse"
)

func terminal(s replicate.Status) bool {
	return s == replicate.Succeeded || s == replicate.Failed || s == replicate.Canceled
}

// OutputURLs flattens a prediction output into a list of URLs. Models return
// either a single URL string or a list of them.
func OutputURLs(output replicate.PredictionOutput) []string {
	var urls []string
	switch out := output.(type) {
	case string:
		if out != "" {
			urls = append(urls, out)
		}
	case []any:
		for _, v := range out {
			if s, ok := v.(string); ok && s != "" {
				urls = append(urls, s)
			}
		}
	}
	return urls
}

func failure(p *replicate.Prediction) error {
	msg := fmt.Sprintf("prediction %s %s", p.ID, p.Status)
	if p.Error != nil {
		msg = fmt.Sprintf("%s: %v", msg, p.Error)
	}
	// A model failure is deterministic for its input; canceled runs are not
	cat := dreamfuse.ErrorUserInput
	if p.Status == replicate.Canceled {
		cat = dreamfuse.ErrorTransient
	}
	return &dreamfuse.Error{Msg: msg, Cat: cat}
}
