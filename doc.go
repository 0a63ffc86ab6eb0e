/*
Package axtree inspects and drives applications through their accessibility tree.

An application exposes its user interface as a tree of accessible elements. Each element has a path (such as "/0/1"), a name, a role and a set of extended attributes: description, position, size, attributes, actions, text, value, states and relations. axtree addresses elements by path and either reports on them or acts on them.

# Concept

A request is an options bag with one primary key (action, set-text, set-value, a mouse event, key, dump, or an attribute name) and a path. The dispatcher classifies the bag, opens a connection to a device, performs exactly one call and releases the connection on every exit path. Reports are rendered from the fetched snapshot:

  - Dumps print an aligned PATH|NAME|ROLE|CHILDREN table, or save the full subtree as XML, JSON or YAML.
  - Attribute queries print a detail report of one element.
  - Mutating requests print SUCCESS or FAILURE.

Devices implement ports.Device. The browser adapter reads the Chrome accessibility tree over the DevTools protocol; the memory adapter serves a saved dump, which makes every dump replayable offline.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/axtree"
		"github.com/aretw0/axtree/pkg/adapters/browser"
	)

	func main() {
		device := browser.New(browser.Config{ControlURL: "localhost:9222"})
		explorer := axtree.New(device)

		table, err := explorer.Tree(context.Background(), "/0", 2)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(table)
	}

The axtree command wraps the same dispatcher: "axtree explore /0 --dump 2" prints the table above, and "axtree mcp" serves it to agents as an MCP tool.
*/
package axtree
