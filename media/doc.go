// Package media moves images between the hosting platform, local disk and
// remote APIs.
//
// The platform hands handlers temp paths such as /tmp/abc.png; [Resolver]
// turns those into URLs the platform serves publicly. [Fetcher] downloads
// remote images, [EncodeJPEGBase64] prepares local files for vision models,
// and [TempFiles] removes intermediate files once a handler is done.
package media
