package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrParentNotFound    = errors.New("parent task not found")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTaskAlreadyActive = errors.New("another task is already active")
	ErrGateExpired       = errors.New("commitment window expired")
	ErrGateClosed        = errors.New("no activation in progress")
	ErrEmptyFirstMove    = errors.New("first move cannot be empty")
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrNotSiblings       = errors.New("tasks do not share a parent")
	ErrNotRootTask       = errors.New("goal members must be root tasks")
	ErrNotInitialized    = errors.New("chrct store not initialized")
	ErrNoRemote          = errors.New("no remote store configured")
	ErrAINotConfigured   = errors.New("no completion endpoint configured")
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
)
