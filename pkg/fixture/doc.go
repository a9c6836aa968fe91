// Package fixture reads YAML descriptions of trees and plays them through
// a Renderer over an in-memory host, one step at a time.
//
// A fixture is a list of steps. A step either renders a tree or dispatches
// an event to the element with a given id:
//
//	name: counter
//	steps:
//	  - name: mount
//	    tree:
//	      tag: main
//	      children:
//	        - component: counter
//	          props: {id: c, start: 1}
//	        - text: footer
//	  - name: increment
//	    dispatch: {id: c-inc, event: click}
//
// Node fields: tag, text, component, fragment (exactly one), plus key,
// props, children and html (raw inner markup of an element). Components
// are looked up in a Registry; Demo provides counter, list and static.
package fixture
