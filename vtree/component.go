package vtree

import (
	"github.com/vango-dev/reactive-core/host"
	"github.com/vango-dev/reactive-core/reactive"
)

// Slots maps a named slot to the children render function the parent
// supplied for it.
type Slots map[string][]*Node

// SetupContext is the second argument to a stateful component's Setup
// function: slots passed by the parent and an Expose hook a component can
// use to publish a handle to template refs.
type SetupContext struct {
	Slots  Slots
	Expose func(exposed any)
}

// Setup is a stateful component's one-time initializer. It runs inside the
// instance's own Scope so that any signals/derived/effects it creates are
// torn down automatically when the instance unmounts; it returns the
// Render that will be invoked on every subsequent update.
type Setup func(props Props, ctx *SetupContext) Render

// LifecycleHook is a callback registered via one of the On* functions
// below, run in registration order.
type LifecycleHook func()

type lifecycleHooks struct {
	beforeMount   []LifecycleHook
	mounted       []LifecycleHook
	beforeUpdate  []LifecycleHook
	updated       []LifecycleHook
	beforeUnmount []LifecycleHook
	unmounted     []LifecycleHook
	activated     []LifecycleHook
	deactivated   []LifecycleHook
}

// Instance is the live state behind a mounted KindComponent node (§3): the
// Effect that drives its render, the subtree it currently owns, lifecycle
// hooks registered during Setup, and the Scope that bounds everything the
// component created.
type Instance struct {
	node   *Node
	scope  *reactive.Scope
	effect *reactive.Effect

	render Render
	props  Props
	slots  Slots

	subtree *Node
	next    *Node // never written: patchComponent re-renders synchronously via Execute

	hooks lifecycleHooks

	isMounted   bool
	isUnmounted bool

	// AsyncDep/AsyncResolved support components whose Setup returns before
	// its data is ready (out of scope for the render loop itself; kept as
	// plain fields so a host-level suspense boundary can poll them).
	AsyncDep      bool
	AsyncResolved bool

	exposed any

	container host.Node
	anchor    host.Node
	ctx       Context
}

var currentInstance *Instance

// OnBeforeMount and friends register a lifecycle hook against the
// instance currently running its Setup function. Calling one outside of
// Setup is a no-op, mirroring the teacher's own hook-registration guard in
// owner.go's TrackHook.
func OnBeforeMount(fn LifecycleHook)   { addHook(&currentInstance, func(i *Instance) { i.hooks.beforeMount = append(i.hooks.beforeMount, fn) }) }
func OnMounted(fn LifecycleHook)       { addHook(&currentInstance, func(i *Instance) { i.hooks.mounted = append(i.hooks.mounted, fn) }) }
func OnBeforeUpdate(fn LifecycleHook)  { addHook(&currentInstance, func(i *Instance) { i.hooks.beforeUpdate = append(i.hooks.beforeUpdate, fn) }) }
func OnUpdated(fn LifecycleHook)       { addHook(&currentInstance, func(i *Instance) { i.hooks.updated = append(i.hooks.updated, fn) }) }
func OnBeforeUnmount(fn LifecycleHook) { addHook(&currentInstance, func(i *Instance) { i.hooks.beforeUnmount = append(i.hooks.beforeUnmount, fn) }) }
func OnUnmounted(fn LifecycleHook)     { addHook(&currentInstance, func(i *Instance) { i.hooks.unmounted = append(i.hooks.unmounted, fn) }) }
func OnActivated(fn LifecycleHook)     { addHook(&currentInstance, func(i *Instance) { i.hooks.activated = append(i.hooks.activated, fn) }) }
func OnDeactivated(fn LifecycleHook)   { addHook(&currentInstance, func(i *Instance) { i.hooks.deactivated = append(i.hooks.deactivated, fn) }) }

func addHook(cur **Instance, register func(*Instance)) {
	if *cur == nil {
		return
	}
	register(*cur)
}

func runHooks(hs []LifecycleHook) {
	for _, h := range hs {
		h()
	}
}

func mountComponent(n *Node, container host.Node, anchor host.Node, ctx Context) {
	inst := &Instance{node: n, container: container, anchor: anchor, ctx: ctx}
	n.Instance = inst
	inst.scope = reactive.NewScope()

	if n.Render != nil {
		inst.render = n.Render
	}

	inst.props = n.Props

	inst.scope.Run(func() {
		if n.Setup != nil {
			prevInst := currentInstance
			currentInstance = inst
			sctx := &SetupContext{Slots: inst.slots, Expose: func(exposed any) { inst.exposed = exposed }}
			inst.render = n.Setup(n.Props, sctx)
			currentInstance = prevInst
		}

		runHooks(inst.hooks.beforeMount)

		// Creating the Effect runs it immediately (§4.3), performing the
		// first mount synchronously; every later trigger re-enters the
		// same closure to patch the previous subtree against the new one.
		inst.effect = reactive.CreateEffectIn(reactive.CurrentWorld(), func() reactive.Cleanup {
			runHooks(inst.hooks.beforeUpdate)
			next := inst.render(inst.props)
			if inst.subtree == nil {
				inst.subtree = next
				Patch(nil, inst.subtree, inst.container, inst.anchor, inst.ctx)
				if !inst.isMounted {
					inst.isMounted = true
					queuePostFlush(hookJobID{inst, "mounted"}, func() { runHooks(inst.hooks.mounted) })
				}
			} else {
				old := inst.subtree
				inst.subtree = next
				Patch(old, next, inst.container, inst.anchor, inst.ctx)
				queuePostFlush(hookJobID{inst, "updated"}, func() { runHooks(inst.hooks.updated) })
			}
			n.El = firstHostNode(inst.subtree)
			return nil
		})
	})
}

func patchComponent(old, next *Node, container host.Node, anchor host.Node, ctx Context) {
	if old == nil {
		mountComponent(next, container, anchor, ctx)
		return
	}
	inst := old.Instance
	next.Instance = inst
	inst.node = next
	inst.props = next.Props
	inst.container = container
	inst.anchor = anchor
	inst.ctx = ctx
	// Forcing the component's effect to re-execute re-derives its subtree
	// from the new props; signals the render body reads decide internally
	// whether anything downstream actually changed.
	if err := inst.effect.Execute(); err != nil {
		panic(err)
	}
	next.El = inst.node.El
}

func unmountComponent(n *Node, ctx Context) {
	inst := n.Instance
	if inst == nil || inst.isUnmounted {
		return
	}
	runHooks(inst.hooks.beforeUnmount)
	if inst.subtree != nil {
		Unmount(inst.subtree, ctx)
	}
	inst.scope.Stop()
	inst.isUnmounted = true
	queuePostFlush(hookJobID{inst, "unmounted"}, func() { runHooks(inst.hooks.unmounted) })
}

// firstHostNode descends into fragments/components to find the host node
// a component's own El should alias, so that a parent diffing around this
// component node has a real anchor to insert relative to.
func firstHostNode(n *Node) host.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindComponent:
		if n.Instance != nil {
			return firstHostNode(n.Instance.subtree)
		}
		return nil
	case KindFragment:
		if len(n.Children) > 0 {
			return firstHostNode(n.Children[0])
		}
		return n.El
	default:
		return n.El
	}
}
