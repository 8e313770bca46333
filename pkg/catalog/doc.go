// Package catalog is a client for the product-catalog HTTP API.
//
// The package turns API responses into typed value objects and turns
// failures into a single error type.
//
// # Building a Client
//
// A [Client] never builds its own network client. The caller supplies a
// [Transport], either a plain *http.Client wrapped by [NewHTTPTransport]
// or any instrumented implementation:
//
//	client, err := catalog.New(catalog.Config{
//	    BaseURL:    "https://catalog.example.com",
//	    StoreToken: os.Getenv("STORE_TOKEN"),
//	    Transport:  catalog.NewHTTPTransport(http.DefaultClient),
//	})
//
// Every operation takes a context. Cancellation and timeouts are whatever
// the transport does with it.
//
// # Value Objects
//
// Response bodies are parsed into a [Value] (an untyped JSON tree) and
// immediately mapped into [Product], [ProductVariant], [ProductImage],
// [ProductType] or [ProductCategory]. Each type offers:
//
//   - XxxFromValue: build the object, failing with [KindMalformedResponse]
//     when a required field is missing or has the wrong type
//   - ToValue: the inverse mapping, emitting absent optionals as null
//   - MarshalJSON / UnmarshalJSON wired through the same mapping
//
// Collections (images, variants, attributes) are never nil after decoding.
//
// # Errors
//
// Every operation returns either a complete result or an [*Error]:
//
//   - [KindValidation]: the API answered 422 with an "errors" map, exposed as [Error.Fields]
//   - [KindAPI]: any other non-2xx status, or a transport failure (StatusCode 0)
//   - [KindMalformedResponse]: a 2xx body that does not fit the value object
//
// Use errors.Is with [ErrAPI], [ErrValidation] and [ErrMalformedResponse], or
// the [IsAPI], [IsValidation] and [IsMalformedResponse] helpers. A validation
// error also matches [ErrAPI]. The transport failure is reachable through
// errors.Is / errors.As on the returned error.
package catalog
