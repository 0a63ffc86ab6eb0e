/*
Package ports defines the driven ports (interfaces) used by the request
dispatcher.

These interfaces decouple the dispatch-and-render core from the concrete
session transports and storage, so the same core drives a live browser, a
recorded fixture or a test stub.

# Key Interfaces

  - Device: a connection to an instrumented application exposing an
    accessible tree (e.g. Chrome via DevTools, or an in-memory fixture).
  - DocumentSaver: persists a dumped subtree under a file name.
*/
package ports
