// Package ecs publishes normalized pointer events into a [Donburi] world.
//
// [NewDonburiSink] returns a pointer.EventSink. Every event the Context
// posts is published to [PointerEventType]; ECS systems subscribe to it and
// receive the events when the world processes its event queue.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ctx := pointer.NewContext(pointer.Config{Sink: sink})
//	ecs.PointerEventType.Subscribe(world, onPointer)
//	...
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
