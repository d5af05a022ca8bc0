// Package collector turns metric namespaces into batched IPMI requests.
//
// A vendor description maps raw requests to named metrics. Collect sends
// each needed request once, in a single windowed batch, then decodes the
// responses with the request's format. Metric namespaces have the form
//
//	intel/ipmi/<root>[/<metric>]
//
// where the metric part is omitted for a format's root value.
package collector
