// Package flo contains the core components of Flo, a coordinator for parallel
// training and execution of pipelines of stateful processing nodes. This root
// package defines the types which are employed during regular use of the
// framework, as well as in its extension, and is an excellent overview of
// Flo's key concepts. Concrete implementations live in the flow, schedulers,
// nodes and datasource packages.
package flo
