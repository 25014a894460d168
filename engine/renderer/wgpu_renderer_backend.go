package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Composite alpha modes by their native numeric value.
const (
	alphaModeAuto            = 0
	alphaModeOpaque          = 1
	alphaModePremultiplied   = 2
	alphaModeUnpremultiplied = 3
	alphaModeInherit         = 4
)

type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	options     Options
	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	surfaceFormat        *wgpu.TextureFormat
	width, height        int
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	// Frame-wide bindings (group 0).
	frameLayout    *wgpu.BindGroupLayout
	frameUniform   *wgpu.Buffer
	lightUniform   *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup

	// Object layouts keyed by whether they carry a texture and sampler (group 1).
	objectLayouts map[bool]*wgpu.BindGroupLayout
	pipelines     map[string]pipeline.Pipeline

	// Frame state for one DrawFrame call.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackend{}

// newWGPURendererBackend creates the instance, surface, adapter and device. It panics when no
// adapter or device is available.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, options Options) *wgpuRendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackend{
		mu:            &sync.Mutex{},
		instance:      wgpu.CreateInstance(nil),
		options:       options,
		presentMode:   wgpu.PresentModeFifo,
		sampleCount:   MSAAOff,
		objectLayouts: make(map[bool]*wgpu.BindGroupLayout),
		pipelines:     make(map[string]pipeline.Pipeline),
	}
	if options.PresentMode == PresentModeUncapped {
		b.presentMode = wgpu.PresentModeImmediate
	}
	if options.Antialias {
		b.sampleCount = MSAA4x
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: options.ForceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Globe Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initFrameBindings(); err != nil {
		panic(err)
	}
	return b
}

// pickAlphaMode chooses how the swapchain is composited. A translucent buffer prefers
// unpremultiplied (or premultiplied) alpha so a zero clear alpha shows what is behind the window.
func pickAlphaMode[T ~uint32 | ~int32 | ~int | ~uint64](modes []T, alpha, premultiplied bool) T {
	if len(modes) == 0 {
		return T(alphaModeAuto)
	}
	if !alpha {
		for _, m := range modes {
			if m == T(alphaModeOpaque) {
				return m
			}
		}
		return modes[0]
	}

	prefs := []T{T(alphaModeUnpremultiplied), T(alphaModePremultiplied), T(alphaModeInherit), T(alphaModeAuto)}
	if premultiplied {
		prefs[0], prefs[1] = prefs[1], prefs[0]
	}
	for _, want := range prefs {
		for _, m := range modes {
			if m == want {
				return m
			}
		}
	}
	return modes[0]
}

func (b *wgpuRendererBackend) initFrameBindings() error {
	layoutDesc := pipeline.FrameLayout(light.GPULightBlockSize)
	layout, err := b.device.CreateBindGroupLayout(&layoutDesc)
	if err != nil {
		return fmt.Errorf("frame bind group layout: %w", err)
	}
	b.frameLayout = layout

	b.frameUniform, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform",
		Size:  pipeline.FrameUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.lightUniform, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Light Uniform",
		Size:  light.GPULightBlockSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.frameUniform, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.lightUniform, Size: wgpu.WholeSize},
		},
	})
	return err
}

func (b *wgpuRendererBackend) Configure(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	b.width, b.height = width, height

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   pickAlphaMode(capabilities.AlphaModes, b.options.Alpha, b.options.PremultipliedAlpha),
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled && !b.options.PreserveDrawingBuffer {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in beginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// releaseTargets frees the MSAA and depth targets. Caller must hold the mutex.
func (b *wgpuRendererBackend) releaseTargets() {
	for _, v := range []*wgpu.TextureView{b.msaaTextureView, b.depthTextureView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{b.msaaTexture, b.depthTexture} {
		if t != nil {
			t.Release()
		}
	}
	b.msaaTexture, b.msaaTextureView = nil, nil
	b.depthTexture, b.depthTextureView = nil, nil
}

func (b *wgpuRendererBackend) DrawFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return fmt.Errorf("surface not configured")
	}

	b.queue.WriteBuffer(b.frameUniform, 0, PackFrameUniform(frame))
	b.queue.WriteBuffer(b.lightUniform, 0, light.MarshalBlock(frame.Lights))

	// Upload before the pass begins so buffer writes are ordered ahead of the draws.
	type prepared struct {
		p        pipeline.Pipeline
		provider bind_group_provider.BindGroupProvider
	}
	draws := make([]prepared, 0, len(frame.Items))
	for _, item := range frame.Items {
		p, err := b.pipelineFor(item.Program, item.State)
		if err != nil {
			return err
		}
		provider, err := b.providerFor(item, p)
		if err != nil {
			return err
		}
		if provider == nil {
			continue
		}
		b.queue.WriteBuffer(provider.UniformBuffer(), 0, PackObjectUniform(item.Model, item.Node.Material()))
		draws = append(draws, prepared{p: p, provider: provider})
	}

	if err := b.beginFrame(frame.Clear); err != nil {
		return err
	}
	b.framePass.SetBindGroup(0, b.frameBindGroup, nil)
	for _, d := range draws {
		b.drawCall(d.p, d.provider)
	}
	b.endFrame()
	b.present()
	return nil
}

// pipelineFor returns the cached render pipeline of a program under a state, creating it on
// first use. Caller must hold the mutex.
func (b *wgpuRendererBackend) pipelineFor(program pipeline.Program, state pipeline.State) (pipeline.Pipeline, error) {
	key := pipeline.Key(program, state)
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}
	p, err := pipeline.For(program, state)
	if err != nil {
		return nil, err
	}
	if err := b.registerRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("register pipeline %s: %w", key, err)
	}
	b.pipelines[key] = p
	return p, nil
}

func (b *wgpuRendererBackend) objectLayout(textured bool) (*wgpu.BindGroupLayout, error) {
	if l, ok := b.objectLayouts[textured]; ok {
		return l, nil
	}
	desc := pipeline.ObjectLayout(textured)
	l, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, err
	}
	b.objectLayouts[textured] = l
	return l, nil
}

func (b *wgpuRendererBackend) registerRenderPipeline(p pipeline.Pipeline) error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: string(p.Program()),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	objectLayout, err := b.objectLayout(p.Textured())
	if err != nil {
		return err
	}
	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, objectLayout},
	})
	if err != nil {
		return err
	}

	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntry(),
			Buffers:    []wgpu.VertexBufferLayout{p.VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntry(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

// providerFor returns the GPU resources of a draw item, uploading geometry and texture on first
// use and rebuilding the bind group when the bound texture changed. A nil provider means the
// item cannot be drawn this frame. Caller must hold the mutex.
func (b *wgpuRendererBackend) providerFor(item DrawItem, p pipeline.Pipeline) (bind_group_provider.BindGroupProvider, error) {
	geom := item.Node.Geometry()
	if geom.Disposed() {
		return nil, nil
	}

	provider, _ := geom.Handle().(bind_group_provider.BindGroupProvider)
	if provider == nil {
		var err error
		if provider, err = b.uploadGeometry(item); err != nil {
			return nil, err
		}
		geom.SetHandle(provider)
		if provider.Released() {
			return nil, nil
		}
	}

	var texView *wgpu.TextureView
	var sampler *wgpu.Sampler
	if p.Textured() {
		tex := item.Node.Material().Texture()
		if tex == nil || tex.Disposed() {
			return nil, nil
		}
		tp, _ := tex.Handle().(*bind_group_provider.TextureProvider)
		if tp == nil {
			var err error
			if tp, err = b.uploadTexture(tex); err != nil {
				return nil, err
			}
			tex.SetHandle(tp)
		}
		texView, sampler = tp.View(), tp.Sampler()
		if texView == nil {
			return nil, nil
		}
	}

	if provider.BindGroup() == nil || provider.BoundTexture() != texView {
		layout, err := b.objectLayout(p.Textured())
		if err != nil {
			return nil, err
		}
		entries := []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: provider.UniformBuffer(), Size: wgpu.WholeSize},
		}
		if p.Textured() {
			entries = append(entries,
				wgpu.BindGroupEntry{Binding: 1, TextureView: texView},
				wgpu.BindGroupEntry{Binding: 2, Sampler: sampler},
			)
		}
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   provider.Label() + " Bind Group",
			Layout:  layout,
			Entries: entries,
		})
		if err != nil {
			return nil, err
		}
		provider.SetBindGroup(bg, texView)
	}
	return provider, nil
}

func (b *wgpuRendererBackend) uploadGeometry(item DrawItem) (bind_group_provider.BindGroupProvider, error) {
	label := item.Node.Name()
	if label == "" {
		label = item.Node.Kind().String()
	}
	provider := bind_group_provider.NewBindGroupProvider(label)

	vertexData, indices := PackGeometry(item.Program, item.Node.Geometry(), item.Node.Material())
	indexData := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		indexData = append(indexData, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
	}

	vb, err := b.createBuffer(label+" Vertex Buffer", wgpu.BufferUsageVertex, vertexData)
	if err != nil {
		return nil, err
	}
	ib, err := b.createBuffer(label+" Index Buffer", wgpu.BufferUsageIndex, indexData)
	if err != nil {
		vb.Release()
		return nil, err
	}
	provider.SetMesh(vb, item.Node.Geometry().VertexCount(), ib, len(indices))

	ub, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Object Uniform",
		Size:  pipeline.ObjectUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		provider.Release()
		return nil, err
	}
	provider.SetUniformBuffer(ub)
	return provider, nil
}

func (b *wgpuRendererBackend) createBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	// Zero-sized buffers are invalid; pad to one aligned word.
	size := max(uint64(len(data)), 4)
	size = (size + 3) &^ 3
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		padded := data
		if uint64(len(data)) != size {
			padded = make([]byte, size)
			copy(padded, data)
		}
		b.queue.WriteBuffer(buf, 0, padded)
	}
	return buf, nil
}

func (b *wgpuRendererBackend) uploadTexture(t *node.Texture) (*bind_group_provider.TextureProvider, error) {
	data := t.Data
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Sprite Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	s := t.Sampler
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Sprite Sampler",
		AddressModeU:  common.Coalesce(s.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(s.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     common.Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMaxClamp:   32,
		MaxAnisotropy: common.Coalesce(s.MaxAnisotropy, 1),
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}
	return bind_group_provider.NewTextureProvider(tex, view, samp), nil
}

// beginFrame acquires the next swapchain texture and begins the main render pass.
// Caller must hold the mutex.
func (b *wgpuRendererBackend) beginFrame(clear common.Color) error {
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{R: clear.R, G: clear.G, B: clear.B, A: clear.A}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

// drawCall encodes one indexed draw. Caller must hold the mutex.
func (b *wgpuRendererBackend) drawCall(p pipeline.Pipeline, provider bind_group_provider.BindGroupProvider) {
	if provider.IndexCount() == 0 {
		return
	}
	b.framePass.SetPipeline(p.Pipeline())
	b.framePass.SetBindGroup(1, provider.BindGroup(), nil)
	b.framePass.SetVertexBuffer(0, provider.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(provider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(provider.IndexCount()), 1, 0, 0, 0)
}

// endFrame ends the render pass and submits the command buffer. Caller must hold the mutex.
func (b *wgpuRendererBackend) endFrame() {
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		return
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

// present shows the acquired surface image and drops the frame references.
// Caller must hold the mutex.
func (b *wgpuRendererBackend) present() {
	if b.frameSurface == nil {
		return
	}
	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, p := range b.pipelines {
		if rp := p.Pipeline(); rp != nil {
			rp.Release()
		}
		delete(b.pipelines, key)
	}
	for textured, l := range b.objectLayouts {
		l.Release()
		delete(b.objectLayouts, textured)
	}
	b.releaseTargets()
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
		b.frameLayout = nil
	}
	for _, buf := range []*wgpu.Buffer{b.frameUniform, b.lightUniform} {
		if buf != nil {
			buf.Release()
		}
	}
	b.frameUniform, b.lightUniform = nil, nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
