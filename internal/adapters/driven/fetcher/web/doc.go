// Package web provides a ContentFetcher that retrieves pages over HTTP and
// normalises the main article body into light markdown.
package web
