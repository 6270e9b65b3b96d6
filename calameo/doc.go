// Package calameo provides a client for the Calaméo publishing API.
//
// Every request is a multipart POST carrying the action name, the
// caller's fields and four injected fields: expires, output, apikey and
// signature. The signature is an MD5 digest of the shared secret followed
// by every non-file field, sorted by name.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := calameo.NewClient(
//		calameo.Credentials{APIKey: "key", Secret: "secret"},
//		logger,
//		calameo.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	books, err := client.FetchAllAccountBooks(ctx)
//
// # Error Handling
//
// Failures are returned, never retried:
//
//   - HTTPError: the API answered with a non-200 status
//   - RemoteError: the API answered 200 but the envelope status is not "ok"
//   - DecodeError: the body does not have the shape the action expects
//   - PaginationError: a page of a FetchAll* call failed; wraps one of the above
//
//	var remote *calameo.RemoteError
//	if errors.As(err, &remote) {
//		fmt.Println(remote.Code, remote.Message)
//	}
package calameo
