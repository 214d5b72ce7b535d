// Package xactor 进程内 actor 注册与消息分发
package xactor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/xiaoshicae/xactor/xtrace"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// System actor 注册表，负责按 Recipient 路由消息
// 由调用方显式创建和持有，同一进程内可以存在多个互不影响的 System
type System struct {
	mu      sync.RWMutex
	actors  map[string]Actor
	order   []string
	monitor DispatchMonitor
}

type Option func(*System)

// WithMonitor 指定 dispatch monitor，覆盖全局默认值
func WithMonitor(m DispatchMonitor) Option {
	return func(s *System) {
		s.monitor = m
	}
}

// WithActors 创建时注册 actor，重复 ID 会 panic
func WithActors(actors ...Actor) Option {
	return func(s *System) {
		for _, a := range actors {
			s.MustAddActor(a)
		}
	}
}

func NewSystem(opts ...Option) *System {
	s := &System{actors: make(map[string]Actor)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddActor 注册 actor，ID 已存在时返回 DuplicateActorError，不会覆盖
func (s *System) AddActor(actor Actor) error {
	if actor == nil || actor.ID() == "" {
		return ErrInvalidActor
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actors[actor.ID()]; ok {
		return &DuplicateActorError{ActorID: actor.ID()}
	}
	s.actors[actor.ID()] = actor
	s.order = append(s.order, actor.ID())
	return nil
}

// MustAddActor 用于静态装配
func (s *System) MustAddActor(actor Actor) {
	if err := s.AddActor(actor); err != nil {
		panic(fmt.Sprintf("XActor add actor failed, err=[%v]", err))
	}
}

// ReplaceActor 替换已注册的同 ID actor（不存在时等同于 AddActor），返回被替换的 actor
func (s *System) ReplaceActor(actor Actor) (Actor, error) {
	if actor == nil || actor.ID() == "" {
		return nil, ErrInvalidActor
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.actors[actor.ID()]
	if !ok {
		s.order = append(s.order, actor.ID())
	}
	s.actors[actor.ID()] = actor
	return old, nil
}

// Actor 按 ID 获取 actor
func (s *System) Actor(id string) (Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.actors[id]
	return a, ok
}

func (s *System) Has(id string) bool {
	_, ok := s.Actor(id)
	return ok
}

// IDs 已注册 actor 的 ID，按字典序
func (s *System) IDs() []string {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Actors 按注册顺序返回所有 actor
func (s *System) Actors() []Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actors := make([]Actor, 0, len(s.order))
	for _, id := range s.order {
		actors = append(actors, s.actors[id])
	}
	return actors
}

// Require 检查 ids 是否全部已注册，返回第一个缺失的 ActorNotFoundError
func (s *System) Require(ids ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range ids {
		if _, ok := s.actors[id]; !ok {
			return &ActorNotFoundError{ActorID: id}
		}
	}
	return nil
}

// Dispatch 将消息交给 Recipient 处理并等待结果
// 未注册返回 ActorNotFoundError 且不会调用任何 actor；actor 返回错误或 panic 时返回 ActorExecutionError
func (s *System) Dispatch(ctx context.Context, msg *Message) (result any, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if msg == nil {
		return nil, fmt.Errorf("XActor dispatch nil message")
	}

	actor, ok := s.Actor(msg.Recipient)
	if !ok {
		return nil, &ActorNotFoundError{ActorID: msg.Recipient}
	}

	ctx, span := xtrace.Start(ctx, "xactor.dispatch "+msg.Recipient,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("xactor.message.id", msg.ID),
			attribute.String("xactor.message.type", string(msg.Type)),
			attribute.String("xactor.sender", msg.Sender),
			attribute.String("xactor.actor.id", actor.ID()),
		),
	)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if m := s.resolveMonitor(); m != nil {
			m.OnDispatchDone(ctx, &DispatchEvent{
				MessageID:   msg.ID,
				MessageType: msg.Type,
				Sender:      msg.Sender,
				ActorID:     msg.Recipient,
				Err:         err,
				Duration:    time.Since(start),
			})
		}
	}()

	result, err = safeHandle(ctx, actor, msg)
	if err != nil {
		return nil, &ActorExecutionError{ActorID: msg.Recipient, Err: err}
	}
	return result, nil
}

// Ask 构造 Process 消息并 dispatch
func (s *System) Ask(ctx context.Context, sender, recipient string, payload any) (any, error) {
	return s.Dispatch(ctx, NewMessage(MessageTypeProcess, sender, recipient, payload))
}

func (s *System) resolveMonitor() DispatchMonitor {
	if s.monitor != nil {
		return s.monitor
	}
	if GetConfig().DisableMonitor {
		return nil
	}
	return GetDefaultMonitor()
}

// safeHandle 捕获 actor 的 panic 并附带堆栈
func safeHandle(ctx context.Context, actor Actor, msg *Message) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return actor.Handle(ctx, msg)
}
