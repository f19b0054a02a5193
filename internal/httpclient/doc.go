// Package httpclient posts word submissions to the wall's words endpoint.
//
// [NewRequestBuilder] fixes the endpoint and the JSON headers once; each call
// to Build encodes a [word.Submission] into a POST request, optionally
// carrying W3C trace headers:
//
//	builder, err := httpclient.NewRequestBuilder(cfg.Endpoint())
//	if err != nil {
//		return err
//	}
//	builder.WithPropagation(cfg.Tracing.ShouldPropagate())
//
// [Submitter] executes the request with a client from [NewClient] and reports
// the status and latency. The service answers 201 Created on success; every
// other status is returned as a *runner.HTTPError whose Body holds the
// service's "error" message when the response is JSON.
//
//	client := httpclient.NewClient(5 * time.Second)
//	sub, _ := httpclient.NewSubmitter(client, builder)
//	outcome, err := sub.Submit(ctx, generated.Submission)
package httpclient
