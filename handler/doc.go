// Package handler implements the platform request handlers.
//
// A handler receives a Conf keyed by the platform's parameter names, calls
// one or more generative AI providers, saves any produced image locally and
// returns a Result keyed by the platform's output names:
//
//	winter   图片                     -> 入冬后
//	fusion   图片1, 图片2, 融合描述    -> 生成图片
//	dream    梦境描述                  -> 解梦报告, 梦境图像
//
// Provider calls that the platform expects to be flaky run under the retry
// policy from package retry. Fusion describes both inputs concurrently with
// fanout.FetchPair.
//
// Handlers are registered by name in a Registry, which records request
// metrics when built with NewRegistry(metrics).
package handler
