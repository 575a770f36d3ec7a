// Package client selects and lazily constructs provider adapters.
//
// A Client holds API keys for every provider and builds each adapter the
// first time it is requested:
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	    OpenAIBaseURL: "https://open.momodel.cn/v1",
//	})
//	chat, err := c.Chat(ctx, dreamfuse.ProviderOpenAI)
//
// A single OpenAI or Google adapter serves both chat and image requests.
package client
