// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Emitter stage: turns events into YAML text.
// Handles indentation, line wrapping and scalar style selection.

package libyaml

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// The tag handles every document starts with.
var defaultTagDirectives = []TagDirective{
	{handle: []byte("!"), prefix: []byte("!")},
	{handle: []byte("!!"), prefix: []byte("tag:yaml.org,2002:")},
}

// reserve makes room for at least one more character in the buffer.
func (emitter *Emitter) reserve() error {
	if emitter.bufferPos+5 >= len(emitter.buffer) {
		return emitter.flush()
	}
	return nil
}

// put appends a single ASCII character.
func (emitter *Emitter) put(c byte) error {
	if err := emitter.reserve(); err != nil {
		return err
	}
	emitter.buffer[emitter.bufferPos] = c
	emitter.bufferPos++
	emitter.column++
	return nil
}

func (emitter *Emitter) putString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := emitter.put(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// putBreak appends the configured line break.
func (emitter *Emitter) putBreak() error {
	if err := emitter.reserve(); err != nil {
		return err
	}
	switch emitter.lineBreak {
	case CR_BREAK:
		emitter.buffer[emitter.bufferPos] = '\r'
		emitter.bufferPos++
	case LN_BREAK:
		emitter.buffer[emitter.bufferPos] = '\n'
		emitter.bufferPos++
	case CRLN_BREAK:
		emitter.bufferPos += copy(emitter.buffer[emitter.bufferPos:], "\r\n")
	default:
		panic("unknown line break setting")
	}
	emitter.newLine()
	return nil
}

func (emitter *Emitter) newLine() {
	if emitter.column == 0 {
		emitter.spaceAbove = true
	}
	emitter.column = 0
	emitter.line++
	emitter.indention = true
}

// write copies the UTF-8 character at s[*i] and advances *i past it.
func (emitter *Emitter) write(s []byte, i *int) error {
	if err := emitter.reserve(); err != nil {
		return err
	}
	w := width(s[*i])
	if w == 0 {
		panic("unknown character width")
	}
	emitter.bufferPos += copy(emitter.buffer[emitter.bufferPos:], s[*i:*i+w])
	emitter.column++
	*i += w
	return nil
}

func (emitter *Emitter) writeAll(s []byte) error {
	for i := 0; i < len(s); {
		if err := emitter.write(s, &i); err != nil {
			return err
		}
	}
	return nil
}

// writeBreak copies the line break at s[*i]. A '\n' is normalized to the
// configured line break; any other break character is copied as is.
func (emitter *Emitter) writeBreak(s []byte, i *int) error {
	if s[*i] == '\n' {
		if err := emitter.putBreak(); err != nil {
			return err
		}
		*i++
		return nil
	}
	if err := emitter.write(s, i); err != nil {
		return err
	}
	emitter.newLine()
	return nil
}

// fail records problem as the emitter's failure and returns it.
func (emitter *Emitter) fail(problem string) error {
	emitter.ErrorType = EMITTER_ERROR
	emitter.Problem = problem
	return emitter.err()
}

// Emit an event.
//
// The event may be held back until enough lookahead is queued to decide
// on its layout. Once an error is returned the emitter is unusable and
// every later call returns the same error.
func (emitter *Emitter) Emit(event *Event) error {
	if emitter.ErrorType != NO_ERROR {
		return emitter.err()
	}
	if emitter.eventsHead > 0 && emitter.eventsHead == len(emitter.events) {
		emitter.events = emitter.events[:0]
		emitter.eventsHead = 0
	}
	emitter.events = append(emitter.events, *event)
	for !emitter.needMoreEvents() {
		event := &emitter.events[emitter.eventsHead]
		if err := emitter.analyzeEvent(event); err != nil {
			return err
		}
		if err := emitter.stateMachine(event); err != nil {
			return err
		}
		event.Delete()
		emitter.eventsHead++
	}
	return nil
}

// needMoreEvents reports whether the head event needs more lookahead:
// one event for DOCUMENT-START, two for SEQUENCE-START and three for
// MAPPING-START, unless the node closes sooner.
func (emitter *Emitter) needMoreEvents() bool {
	if emitter.eventsHead == len(emitter.events) {
		return true
	}
	var accumulate int
	switch emitter.events[emitter.eventsHead].Type {
	case DOCUMENT_START_EVENT:
		accumulate = 1
	case SEQUENCE_START_EVENT:
		accumulate = 2
	case MAPPING_START_EVENT:
		accumulate = 3
	default:
		return false
	}
	if len(emitter.events)-emitter.eventsHead > accumulate {
		return false
	}
	level := 0
	for _, queued := range emitter.events[emitter.eventsHead:] {
		switch queued.Type {
		case STREAM_START_EVENT, DOCUMENT_START_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT:
			level++
		case STREAM_END_EVENT, DOCUMENT_END_EVENT, SEQUENCE_END_EVENT, MAPPING_END_EVENT:
			level--
		}
		if level == 0 {
			return false
		}
	}
	return true
}

// increaseIndent opens a nested indentation level.
func (emitter *Emitter) increaseIndent(flow bool) {
	emitter.indents = append(emitter.indents, emitter.indent)
	switch {
	case emitter.indent < 0 && flow:
		emitter.indent = emitter.BestIndent
	case emitter.indent < 0:
		emitter.indent = 0
	case emitter.states[len(emitter.states)-1] == EMIT_BLOCK_SEQUENCE_ITEM_STATE:
		// Inside a block sequence the first level only skips the "- ".
		emitter.indent += 2
	default:
		emitter.indent = emitter.BestIndent * ((emitter.indent + emitter.BestIndent) / emitter.BestIndent)
	}
}

func (emitter *Emitter) popIndent() {
	emitter.indent = emitter.indents[len(emitter.indents)-1]
	emitter.indents = emitter.indents[:len(emitter.indents)-1]
}

func (emitter *Emitter) pushState(state EmitterState) {
	emitter.states = append(emitter.states, state)
}

func (emitter *Emitter) popState() {
	emitter.state = emitter.states[len(emitter.states)-1]
	emitter.states = emitter.states[:len(emitter.states)-1]
}

func (emitter *Emitter) stateMachine(event *Event) error {
	switch emitter.state {
	case EMIT_STREAM_START_STATE:
		return emitter.emitStreamStart(event)
	case EMIT_FIRST_DOCUMENT_START_STATE:
		return emitter.emitDocumentStart(event, true)
	case EMIT_DOCUMENT_START_STATE:
		return emitter.emitDocumentStart(event, false)
	case EMIT_DOCUMENT_CONTENT_STATE:
		emitter.pushState(EMIT_DOCUMENT_END_STATE)
		return emitter.emitNode(event, true, false, false, false)
	case EMIT_DOCUMENT_END_STATE:
		return emitter.emitDocumentEnd(event)
	case EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE:
		return emitter.emitFlowSequenceItem(event, true)
	case EMIT_FLOW_SEQUENCE_ITEM_STATE:
		return emitter.emitFlowSequenceItem(event, false)
	case EMIT_FLOW_MAPPING_FIRST_KEY_STATE:
		return emitter.emitFlowMappingKey(event, true)
	case EMIT_FLOW_MAPPING_KEY_STATE:
		return emitter.emitFlowMappingKey(event, false)
	case EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE:
		return emitter.emitFlowMappingValue(event, true)
	case EMIT_FLOW_MAPPING_VALUE_STATE:
		return emitter.emitFlowMappingValue(event, false)
	case EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE:
		return emitter.emitBlockSequenceItem(event, true)
	case EMIT_BLOCK_SEQUENCE_ITEM_STATE:
		return emitter.emitBlockSequenceItem(event, false)
	case EMIT_BLOCK_MAPPING_FIRST_KEY_STATE:
		return emitter.emitBlockMappingKey(event, true)
	case EMIT_BLOCK_MAPPING_KEY_STATE:
		return emitter.emitBlockMappingKey(event, false)
	case EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE:
		return emitter.emitBlockMappingValue(event, true)
	case EMIT_BLOCK_MAPPING_VALUE_STATE:
		return emitter.emitBlockMappingValue(event, false)
	case EMIT_END_STATE:
		return emitter.fail("expected nothing after STREAM-END")
	default:
		panic("invalid emitter state")
	}
}

func (emitter *Emitter) emitStreamStart(event *Event) error {
	if event.Type != STREAM_START_EVENT {
		return emitter.fail("expected STREAM-START")
	}
	if emitter.encoding == ANY_ENCODING {
		emitter.encoding = event.encoding
		if emitter.encoding == ANY_ENCODING {
			emitter.encoding = UTF8_ENCODING
		}
	}
	if emitter.encoding != UTF8_ENCODING {
		return emitter.fail("only UTF-8 output is supported")
	}
	if emitter.BestIndent < 2 || emitter.BestIndent > 9 {
		emitter.BestIndent = 2
	}
	if emitter.bestWidth >= 0 && emitter.bestWidth <= emitter.BestIndent*2 {
		emitter.bestWidth = 80
	}
	if emitter.bestWidth < 0 {
		emitter.bestWidth = 1<<31 - 1
	}
	if emitter.lineBreak == ANY_BREAK {
		emitter.lineBreak = LN_BREAK
	}

	emitter.indent = -1
	emitter.line = 0
	emitter.column = 0
	emitter.whitespace = true
	emitter.indention = true
	emitter.spaceAbove = true

	emitter.state = EMIT_FIRST_DOCUMENT_START_STATE
	return nil
}

// writeDocumentMarker writes a marker line such as "---" or "...".
func (emitter *Emitter) writeDocumentMarker(marker string) error {
	if err := emitter.writeIndicator(marker, true, false, false); err != nil {
		return err
	}
	return emitter.writeIndent()
}

func (emitter *Emitter) emitDocumentStart(event *Event, first bool) error {
	switch event.Type {
	case DOCUMENT_START_EVENT:
	case STREAM_END_EVENT:
		if emitter.OpenEnded == openEndedKeep {
			if err := emitter.writeDocumentMarker("..."); err != nil {
				return err
			}
		}
		if err := emitter.flush(); err != nil {
			return err
		}
		emitter.state = EMIT_END_STATE
		return nil
	default:
		return emitter.fail("expected DOCUMENT-START or STREAM-END")
	}

	version := event.versionDirective
	if version != nil {
		if err := emitter.analyzeVersionDirective(version); err != nil {
			return err
		}
	}
	emitter.tagDirectives = append(emitter.tagDirectives[:0], defaultTagDirectives...)

	if version != nil {
		// A directive must not be read as part of the previous document.
		if emitter.OpenEnded != openEndedNone {
			if err := emitter.writeDocumentMarker("..."); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator("%YAML", true, false, false); err != nil {
			return err
		}
		if err := emitter.writeDocumentMarker(fmt.Sprintf("%d.%d", version.major, version.minor)); err != nil {
			return err
		}
	}

	implicit := event.Implicit && first && !emitter.canonical && version == nil
	if !implicit {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
		if err := emitter.writeDocumentMarker("---"); err != nil {
			return err
		}
	}
	emitter.state = EMIT_DOCUMENT_CONTENT_STATE
	return nil
}

func (emitter *Emitter) emitDocumentEnd(event *Event) error {
	if event.Type != DOCUMENT_END_EVENT {
		return emitter.fail("expected DOCUMENT-END")
	}
	if err := emitter.writeIndent(); err != nil {
		return err
	}
	if !event.Implicit {
		if err := emitter.writeDocumentMarker("..."); err != nil {
			return err
		}
	}
	if err := emitter.flush(); err != nil {
		return err
	}
	emitter.state = EMIT_DOCUMENT_START_STATE
	return nil
}

// openFlow writes the opening bracket of a flow collection.
func (emitter *Emitter) openFlow(bracket string) error {
	if err := emitter.writeIndicator(bracket, true, true, false); err != nil {
		return err
	}
	emitter.increaseIndent(true)
	emitter.flowLevel++
	return nil
}

// startFlowEntry writes the separator before a flow item or key, wrapping
// the line when it has grown past the preferred width.
func (emitter *Emitter) startFlowEntry(first bool) error {
	if !first {
		if err := emitter.writeIndicator(",", false, false, false); err != nil {
			return err
		}
	}
	if emitter.column == 0 {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
	}
	if emitter.canonical || emitter.column > emitter.bestWidth {
		return emitter.writeIndent()
	}
	return nil
}

func (emitter *Emitter) emitFlowSequenceItem(event *Event, first bool) error {
	if first {
		if err := emitter.openFlow("["); err != nil {
			return err
		}
	}
	if event.Type == SEQUENCE_END_EVENT {
		trailing := emitter.canonical && !first
		if trailing {
			if err := emitter.writeIndicator(",", false, false, false); err != nil {
				return err
			}
		}
		emitter.flowLevel--
		emitter.popIndent()
		if emitter.column == 0 || trailing {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator("]", false, false, false); err != nil {
			return err
		}
		emitter.popState()
		return nil
	}

	if err := emitter.startFlowEntry(first); err != nil {
		return err
	}
	emitter.pushState(EMIT_FLOW_SEQUENCE_ITEM_STATE)
	return emitter.emitNode(event, false, true, false, false)
}

func (emitter *Emitter) emitFlowMappingKey(event *Event, first bool) error {
	if first {
		if err := emitter.openFlow("{"); err != nil {
			return err
		}
	}
	if event.Type == MAPPING_END_EVENT {
		trailing := emitter.canonical && !first
		if trailing {
			if err := emitter.writeIndicator(",", false, false, false); err != nil {
				return err
			}
		}
		emitter.flowLevel--
		emitter.popIndent()
		if trailing {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator("}", false, false, false); err != nil {
			return err
		}
		emitter.popState()
		return nil
	}

	if err := emitter.startFlowEntry(first); err != nil {
		return err
	}
	if !emitter.canonical && emitter.checkSimpleKey() {
		emitter.pushState(EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE)
		return emitter.emitNode(event, false, false, true, true)
	}
	if err := emitter.writeIndicator("?", true, false, false); err != nil {
		return err
	}
	emitter.pushState(EMIT_FLOW_MAPPING_VALUE_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

func (emitter *Emitter) emitFlowMappingValue(event *Event, simple bool) error {
	if simple {
		if err := emitter.writeIndicator(":", false, false, false); err != nil {
			return err
		}
	} else {
		if emitter.canonical || emitter.column > emitter.bestWidth {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.writeIndicator(":", true, false, false); err != nil {
			return err
		}
	}
	emitter.pushState(EMIT_FLOW_MAPPING_KEY_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

func (emitter *Emitter) emitBlockSequenceItem(event *Event, first bool) error {
	if first {
		emitter.increaseIndent(false)
	}
	if event.Type == SEQUENCE_END_EVENT {
		emitter.popIndent()
		emitter.popState()
		return nil
	}
	if err := emitter.writeIndent(); err != nil {
		return err
	}
	if err := emitter.writeIndicator("-", true, false, true); err != nil {
		return err
	}
	emitter.pushState(EMIT_BLOCK_SEQUENCE_ITEM_STATE)
	return emitter.emitNode(event, false, true, false, false)
}

func (emitter *Emitter) emitBlockMappingKey(event *Event, first bool) error {
	if first {
		emitter.increaseIndent(false)
	}
	if event.Type == MAPPING_END_EVENT {
		emitter.popIndent()
		emitter.popState()
		return nil
	}
	if err := emitter.writeIndent(); err != nil {
		return err
	}
	if emitter.checkSimpleKey() {
		emitter.pushState(EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE)
		return emitter.emitNode(event, false, false, true, true)
	}
	if err := emitter.writeIndicator("?", true, false, true); err != nil {
		return err
	}
	emitter.pushState(EMIT_BLOCK_MAPPING_VALUE_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

func (emitter *Emitter) emitBlockMappingValue(event *Event, simple bool) error {
	if simple {
		if err := emitter.writeIndicator(":", false, false, false); err != nil {
			return err
		}
	} else {
		if err := emitter.writeIndent(); err != nil {
			return err
		}
		if err := emitter.writeIndicator(":", true, false, true); err != nil {
			return err
		}
	}
	emitter.pushState(EMIT_BLOCK_MAPPING_KEY_STATE)
	return emitter.emitNode(event, false, false, true, false)
}

// emitNode writes a node in the given context.
func (emitter *Emitter) emitNode(event *Event, root, sequence, mapping, simpleKey bool) error {
	emitter.rootContext = root
	emitter.sequenceContext = sequence
	emitter.mappingContext = mapping
	emitter.simpleKeyContext = simpleKey

	switch event.Type {
	case SCALAR_EVENT:
		return emitter.emitScalar(event)
	case SEQUENCE_START_EVENT:
		if err := emitter.processTag(); err != nil {
			return err
		}
		if emitter.flowLevel > 0 || emitter.canonical || event.SequenceStyle() == FLOW_SEQUENCE_STYLE ||
			emitter.checkEmptySequence() {
			emitter.state = EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE
		} else {
			emitter.state = EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE
		}
		return nil
	case MAPPING_START_EVENT:
		if err := emitter.processTag(); err != nil {
			return err
		}
		if emitter.flowLevel > 0 || emitter.canonical || event.MappingStyle() == FLOW_MAPPING_STYLE ||
			emitter.checkEmptyMapping() {
			emitter.state = EMIT_FLOW_MAPPING_FIRST_KEY_STATE
		} else {
			emitter.state = EMIT_BLOCK_MAPPING_FIRST_KEY_STATE
		}
		return nil
	default:
		return emitter.fail(fmt.Sprintf("expected SCALAR, SEQUENCE-START or MAPPING-START, but got %v", event.Type))
	}
}

func (emitter *Emitter) emitScalar(event *Event) error {
	if err := emitter.selectScalarStyle(event); err != nil {
		return err
	}
	if err := emitter.processTag(); err != nil {
		return err
	}
	emitter.increaseIndent(true)
	if err := emitter.processScalar(); err != nil {
		return err
	}
	emitter.popIndent()
	emitter.popState()
	return nil
}

// checkEmptyCollection reports whether the queued events open a collection
// of the given kind and close it right away.
func (emitter *Emitter) checkEmptyCollection(start, end EventType) bool {
	if len(emitter.events)-emitter.eventsHead < 2 {
		return false
	}
	return emitter.events[emitter.eventsHead].Type == start &&
		emitter.events[emitter.eventsHead+1].Type == end
}

func (emitter *Emitter) checkEmptySequence() bool {
	return emitter.checkEmptyCollection(SEQUENCE_START_EVENT, SEQUENCE_END_EVENT)
}

func (emitter *Emitter) checkEmptyMapping() bool {
	return emitter.checkEmptyCollection(MAPPING_START_EVENT, MAPPING_END_EVENT)
}

// checkSimpleKey reports whether the next node fits on one line as an
// implicit key: a short single-line scalar or an empty collection.
func (emitter *Emitter) checkSimpleKey() bool {
	length := len(emitter.tagData.handle) + len(emitter.tagData.suffix)
	switch emitter.events[emitter.eventsHead].Type {
	case SCALAR_EVENT:
		if emitter.scalarData.multiline {
			return false
		}
		length += len(emitter.scalarData.value)
	case SEQUENCE_START_EVENT:
		if !emitter.checkEmptySequence() {
			return false
		}
	case MAPPING_START_EVENT:
		if !emitter.checkEmptyMapping() {
			return false
		}
	default:
		return false
	}
	return length <= 128
}

// selectScalarStyle settles on the requested style if the value allows it
// and falls back to a quoted style otherwise.
func (emitter *Emitter) selectScalarStyle(event *Event) error {
	data := &emitter.scalarData
	noTag := len(emitter.tagData.handle) == 0 && len(emitter.tagData.suffix) == 0
	if noTag && !event.Implicit && !event.QuotedImplicit {
		return emitter.fail("neither tag nor implicit flags are specified")
	}

	style := event.ScalarStyle()
	if style == ANY_SCALAR_STYLE {
		style = PLAIN_SCALAR_STYLE
	}
	if emitter.canonical || emitter.simpleKeyContext && data.multiline {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}

	inFlow := emitter.flowLevel > 0
	if style == PLAIN_SCALAR_STYLE {
		switch {
		case inFlow && !data.flowPlainAllowed, !inFlow && !data.blockPlainAllowed:
			style = SINGLE_QUOTED_SCALAR_STYLE
		case len(data.value) == 0 && (inFlow || emitter.simpleKeyContext):
			style = SINGLE_QUOTED_SCALAR_STYLE
		case noTag && !event.Implicit:
			style = SINGLE_QUOTED_SCALAR_STYLE
		case noTag && string(event.Tag) == STR_TAG && ResolvePlain(string(data.value)) != STR_TAG:
			style = SINGLE_QUOTED_SCALAR_STYLE
		}
	}
	if style == SINGLE_QUOTED_SCALAR_STYLE && !data.singleQuotedAllowed {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	if style == LITERAL_SCALAR_STYLE || style == FOLDED_SCALAR_STYLE {
		if !data.blockAllowed || inFlow || emitter.simpleKeyContext {
			style = DOUBLE_QUOTED_SCALAR_STYLE
		}
	}

	// A typed scalar keeps its tag unless its plain content implies it.
	if tag := string(event.Tag); noTag && tag != STR_TAG && IsCoreScalarTag(tag) {
		if style != PLAIN_SCALAR_STYLE || !impliesTag(string(data.value), tag) {
			if err := emitter.analyzeTag(event.Tag); err != nil {
				return err
			}
			noTag = false
		}
	}
	if noTag && !event.QuotedImplicit && style != PLAIN_SCALAR_STYLE {
		emitter.tagData.handle = []byte{'!'}
	}
	data.style = style
	return nil
}

// processTag writes the tag of the current node, if it has one.
func (emitter *Emitter) processTag() error {
	handle, suffix := emitter.tagData.handle, emitter.tagData.suffix
	switch {
	case len(handle) == 0 && len(suffix) == 0:
		return nil
	case len(handle) > 0:
		if err := emitter.writeTagHandle(handle); err != nil {
			return err
		}
		if len(suffix) > 0 {
			return emitter.writeTagContent(suffix)
		}
		return nil
	}
	// No directive matched, so the tag is written verbatim.
	if err := emitter.writeIndicator("!<", true, false, false); err != nil {
		return err
	}
	if err := emitter.writeTagContent(suffix); err != nil {
		return err
	}
	return emitter.writeIndicator(">", false, false, false)
}

func (emitter *Emitter) processScalar() error {
	value := emitter.scalarData.value
	allowBreaks := !emitter.simpleKeyContext
	switch emitter.scalarData.style {
	case PLAIN_SCALAR_STYLE:
		return emitter.writePlainScalar(value, allowBreaks)
	case SINGLE_QUOTED_SCALAR_STYLE:
		return emitter.writeSingleQuotedScalar(value, allowBreaks)
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return emitter.writeDoubleQuotedScalar(value, allowBreaks)
	case LITERAL_SCALAR_STYLE:
		return emitter.writeLiteralScalar(value)
	case FOLDED_SCALAR_STYLE:
		return emitter.writeFoldedScalar(value)
	}
	panic("unknown scalar style")
}

// analyzeVersionDirective accepts versions 1.1 and 1.2.
func (emitter *Emitter) analyzeVersionDirective(version *VersionDirective) error {
	if version.major != 1 || (version.minor != 1 && version.minor != 2) {
		return emitter.fail(fmt.Sprintf("incompatible %%YAML directive %d.%d", version.major, version.minor))
	}
	return nil
}

// analyzeTag splits tag into a directive handle and suffix. A tag no
// directive covers is kept whole as the suffix.
func (emitter *Emitter) analyzeTag(tag []byte) error {
	if len(tag) == 0 {
		return emitter.fail("tag value must not be empty")
	}
	if !utf8.Valid(tag) {
		return emitter.fail("tag value must be valid UTF-8")
	}
	for _, directive := range emitter.tagDirectives {
		if bytes.HasPrefix(tag, directive.prefix) {
			emitter.tagData.handle = directive.handle
			emitter.tagData.suffix = tag[len(directive.prefix):]
			return nil
		}
	}
	emitter.tagData.suffix = tag
	return nil
}

// analyzeScalar works out which styles can represent value faithfully.
func (emitter *Emitter) analyzeScalar(value []byte) error {
	if !utf8.Valid(value) {
		return emitter.fail("scalar value must be valid UTF-8")
	}

	data := &emitter.scalarData
	data.value = value

	if len(value) == 0 {
		data.multiline = false
		data.flowPlainAllowed = false
		data.blockPlainAllowed = true
		data.singleQuotedAllowed = true
		data.blockAllowed = false
		return nil
	}

	var (
		blockIndicators, flowIndicators       bool
		lineBreaks, specialChars, tabs        bool
		leadingSpace, leadingBreak            bool
		trailingSpace, trailingBreak          bool
		breakSpace, spaceBreak                bool
		previousSpace, previousBreak          bool
		precededByWhitespace, followedByBlank bool
	)

	if bytes.HasPrefix(value, []byte("---")) || bytes.HasPrefix(value, []byte("...")) {
		blockIndicators = true
		flowIndicators = true
	}

	precededByWhitespace = true
	for i, w := 0, 0; i < len(value); i += w {
		w = width(value[i])
		followedByBlank = i+w >= len(value) || isBlank(value, i+w)

		if i == 0 {
			switch value[i] {
			case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
				flowIndicators = true
				blockIndicators = true
			case '?', ':':
				flowIndicators = true
				if followedByBlank {
					blockIndicators = true
				}
			case '-':
				if followedByBlank {
					flowIndicators = true
					blockIndicators = true
				}
			}
		} else {
			switch value[i] {
			case ',', '?', '[', ']', '{', '}':
				flowIndicators = true
			case ':':
				flowIndicators = true
				if followedByBlank {
					blockIndicators = true
				}
			case '#':
				if precededByWhitespace {
					flowIndicators = true
					blockIndicators = true
				}
			}
		}

		if value[i] == '\t' {
			tabs = true
		} else if !isPrintable(value, i) || !isASCII(value, i) && !emitter.unicode {
			specialChars = true
		}

		last := i+w == len(value)
		switch {
		case isSpace(value, i):
			leadingSpace = leadingSpace || i == 0
			trailingSpace = trailingSpace || last
			breakSpace = breakSpace || previousBreak
			previousSpace, previousBreak = true, false
		case isLineBreak(value, i):
			lineBreaks = true
			leadingBreak = leadingBreak || i == 0
			trailingBreak = trailingBreak || last
			spaceBreak = spaceBreak || previousSpace
			previousSpace, previousBreak = false, true
		default:
			previousSpace, previousBreak = false, false
		}

		precededByWhitespace = isBlankOrZero(value, i)
	}

	// Anything that would be trimmed or folded away rules out plain style.
	unsafePlain := leadingSpace || leadingBreak || trailingSpace || trailingBreak || lineBreaks
	unsafeQuoted := breakSpace || spaceBreak || tabs || specialChars

	data.multiline = lineBreaks
	data.flowPlainAllowed = !unsafePlain && !unsafeQuoted && !flowIndicators
	data.blockPlainAllowed = !unsafePlain && !unsafeQuoted && !blockIndicators
	data.singleQuotedAllowed = !unsafeQuoted
	data.blockAllowed = !trailingSpace && !spaceBreak && !specialChars
	return nil
}

// analyzeEvent validates the tag and value of a node event and caches the
// analysis for the style selection that follows.
func (emitter *Emitter) analyzeEvent(event *Event) error {
	emitter.tagData.handle = nil
	emitter.tagData.suffix = nil
	emitter.scalarData.value = nil

	switch event.Type {
	case SCALAR_EVENT:
		if len(event.Tag) > 0 && (emitter.canonical || (!event.Implicit && !event.QuotedImplicit)) {
			if err := emitter.analyzeTag(event.Tag); err != nil {
				return err
			}
		}
		return emitter.analyzeScalar(event.Value)
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		if len(event.Tag) > 0 && (emitter.canonical || !event.Implicit) {
			return emitter.analyzeTag(event.Tag)
		}
	}
	return nil
}

// writeIndent moves to the current indentation column, breaking the line
// first unless only indentation has been written on it.
func (emitter *Emitter) writeIndent() error {
	indent := max(emitter.indent, 0)
	if !emitter.indention || emitter.column > indent || (emitter.column == indent && !emitter.whitespace) {
		if err := emitter.putBreak(); err != nil {
			return err
		}
	}
	for emitter.column < indent {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	emitter.whitespace = true
	emitter.spaceAbove = false
	return nil
}

func (emitter *Emitter) writeIndicator(indicator string, needWhitespace, isWhitespace, isIndention bool) error {
	if needWhitespace && !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	if err := emitter.putString(indicator); err != nil {
		return err
	}
	emitter.whitespace = isWhitespace
	emitter.indention = emitter.indention && isIndention
	emitter.OpenEnded = openEndedNone
	return nil
}

func (emitter *Emitter) writeTagHandle(value []byte) error {
	if !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}
	if err := emitter.writeAll(value); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// writeTagContent writes a tag suffix, percent-encoding every byte of a
// character that may not appear in a tag.
func (emitter *Emitter) writeTagContent(value []byte) error {
	for i := 0; i < len(value); {
		switch value[i] {
		case ';', '/', '?', ':', '@', '&', '=', '+', '$', ',', '_', '.', '~', '*', '\'', '(', ')', '[', ']':
		default:
			if !isAlpha(value, i) {
				w := width(value[i])
				for _, octet := range value[i : i+w] {
					if err := emitter.putString(string([]byte{'%', hexDigit(octet >> 4), hexDigit(octet)})); err != nil {
						return err
					}
				}
				i += w
				continue
			}
		}
		if err := emitter.write(value, &i); err != nil {
			return err
		}
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// hexDigit returns the upper-case hexadecimal digit for the low nibble of c.
func hexDigit(c byte) byte {
	c &= 0x0f
	if c < 10 {
		return c + '0'
	}
	return c + 'A' - 10
}

func (emitter *Emitter) writePlainScalar(value []byte, allowBreaks bool) error {
	if len(value) > 0 && !emitter.whitespace {
		if err := emitter.put(' '); err != nil {
			return err
		}
	}

	spaces, breaks := false, false
	for i := 0; i < len(value); {
		var err error
		switch {
		case isSpace(value, i):
			if allowBreaks && !spaces && emitter.column > emitter.bestWidth && !isSpace(value, i+1) {
				err = emitter.writeIndent()
				i += width(value[i])
			} else {
				err = emitter.write(value, &i)
			}
			spaces = true
		case isLineBreak(value, i):
			if !breaks && value[i] == '\n' {
				if err := emitter.putBreak(); err != nil {
					return err
				}
			}
			err = emitter.writeBreak(value, &i)
			breaks = true
		default:
			if breaks {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
			}
			err = emitter.write(value, &i)
			emitter.indention = false
			spaces, breaks = false, false
		}
		if err != nil {
			return err
		}
	}

	if len(value) > 0 {
		emitter.whitespace = false
	}
	emitter.indention = false
	if emitter.rootContext {
		emitter.OpenEnded = openEndedPlain
	}
	return nil
}

func (emitter *Emitter) writeSingleQuotedScalar(value []byte, allowBreaks bool) error {
	if err := emitter.writeIndicator("'", true, false, false); err != nil {
		return err
	}

	spaces, breaks := false, false
	for i := 0; i < len(value); {
		var err error
		switch {
		case isSpace(value, i):
			if allowBreaks && !spaces && emitter.column > emitter.bestWidth && i > 0 && i < len(value)-1 && !isSpace(value, i+1) {
				err = emitter.writeIndent()
				i += width(value[i])
			} else {
				err = emitter.write(value, &i)
			}
			spaces = true
		case isLineBreak(value, i):
			if !breaks && value[i] == '\n' {
				if err := emitter.putBreak(); err != nil {
					return err
				}
			}
			err = emitter.writeBreak(value, &i)
			breaks = true
		default:
			if breaks {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
			}
			if value[i] == '\'' {
				if err := emitter.put('\''); err != nil {
					return err
				}
			}
			err = emitter.write(value, &i)
			emitter.indention = false
			spaces, breaks = false, false
		}
		if err != nil {
			return err
		}
	}
	if err := emitter.writeIndicator("'", false, false, false); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// Short escapes understood by double-quoted scalars.
var doubleQuotedEscapes = map[rune]byte{
	0x00:   '0',
	0x07:   'a',
	0x08:   'b',
	0x09:   't',
	0x0A:   'n',
	0x0B:   'v',
	0x0C:   'f',
	0x0D:   'r',
	0x1B:   'e',
	0x22:   '"',
	0x5C:   '\\',
	0x85:   'N',
	0xA0:   '_',
	0x2028: 'L',
	0x2029: 'P',
}

// putEscape writes r as a double-quoted escape sequence, preferring the
// short form and otherwise the narrowest of \x, \u and \U.
func (emitter *Emitter) putEscape(r rune) error {
	if err := emitter.put('\\'); err != nil {
		return err
	}
	if c, ok := doubleQuotedEscapes[r]; ok {
		return emitter.put(c)
	}
	prefix, digits := byte('U'), 8
	switch {
	case r <= 0xFF:
		prefix, digits = 'x', 2
	case r <= 0xFFFF:
		prefix, digits = 'u', 4
	}
	if err := emitter.put(prefix); err != nil {
		return err
	}
	for shift := (digits - 1) * 4; shift >= 0; shift -= 4 {
		if err := emitter.put(hexDigit(byte(r >> uint(shift)))); err != nil {
			return err
		}
	}
	return nil
}

func (emitter *Emitter) writeDoubleQuotedScalar(value []byte, allowBreaks bool) error {
	if err := emitter.writeIndicator(`"`, true, false, false); err != nil {
		return err
	}

	spaces := false
	for i := 0; i < len(value); {
		var err error
		switch {
		case !isPrintable(value, i) || (!emitter.unicode && !isASCII(value, i)) ||
			isBOM(value, i) || isLineBreak(value, i) ||
			value[i] == '"' || value[i] == '\\':
			r, w := utf8.DecodeRune(value[i:])
			i += w
			err = emitter.putEscape(r)
			spaces = false
		case isSpace(value, i):
			if allowBreaks && !spaces && emitter.column > emitter.bestWidth && i > 0 && i < len(value)-1 {
				if err := emitter.writeIndent(); err != nil {
					return err
				}
				// A leading space on the continuation line would be folded away.
				if isSpace(value, i+1) {
					err = emitter.put('\\')
				}
				i += width(value[i])
			} else {
				err = emitter.write(value, &i)
			}
			spaces = true
		default:
			err = emitter.write(value, &i)
			spaces = false
		}
		if err != nil {
			return err
		}
	}
	if err := emitter.writeIndicator(`"`, false, false, false); err != nil {
		return err
	}
	emitter.whitespace = false
	emitter.indention = false
	return nil
}

// writeBlockScalarHints writes the indentation and chomping indicators a
// block scalar header needs to round-trip value.
func (emitter *Emitter) writeBlockScalarHints(value []byte) error {
	if isSpace(value, 0) || isLineBreak(value, 0) {
		if err := emitter.writeIndicator(strconv.Itoa(emitter.BestIndent), false, false, false); err != nil {
			return err
		}
	}

	openEnded := openEndedNone
	chomp := ""
	if len(value) == 0 {
		chomp = "-"
	} else {
		i := len(value) - 1
		for value[i]&0xC0 == 0x80 {
			i--
		}
		switch {
		case !isLineBreak(value, i):
			chomp = "-"
		case i == 0:
			chomp = "+"
			openEnded = openEndedKeep
		default:
			i--
			for value[i]&0xC0 == 0x80 {
				i--
			}
			if isLineBreak(value, i) {
				chomp = "+"
				openEnded = openEndedKeep
			}
		}
	}
	if chomp != "" {
		if err := emitter.writeIndicator(chomp, false, false, false); err != nil {
			return err
		}
	}
	emitter.OpenEnded = openEnded
	return nil
}

// startBlockScalar writes the header line of a literal or folded scalar.
func (emitter *Emitter) startBlockScalar(indicator string, value []byte) error {
	if err := emitter.writeIndicator(indicator, true, false, false); err != nil {
		return err
	}
	if err := emitter.writeBlockScalarHints(value); err != nil {
		return err
	}
	if err := emitter.putBreak(); err != nil {
		return err
	}
	emitter.whitespace = true
	return nil
}

func (emitter *Emitter) writeLiteralScalar(value []byte) error {
	if err := emitter.startBlockScalar("|", value); err != nil {
		return err
	}
	breaks := true
	for i := 0; i < len(value); {
		if isLineBreak(value, i) {
			if err := emitter.writeBreak(value, &i); err != nil {
				return err
			}
			breaks = true
			continue
		}
		if breaks {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
		}
		if err := emitter.write(value, &i); err != nil {
			return err
		}
		emitter.indention = false
		breaks = false
	}
	return nil
}

func (emitter *Emitter) writeFoldedScalar(value []byte) error {
	if err := emitter.startBlockScalar(">", value); err != nil {
		return err
	}
	breaks, leadingSpaces := true, true
	for i := 0; i < len(value); {
		if isLineBreak(value, i) {
			if !breaks && !leadingSpaces && value[i] == '\n' {
				k := 0
				for isLineBreak(value, k) {
					k += width(value[k])
				}
				if !isBlankOrZero(value, k) {
					if err := emitter.putBreak(); err != nil {
						return err
					}
				}
			}
			if err := emitter.writeBreak(value, &i); err != nil {
				return err
			}
			breaks = true
			continue
		}
		if breaks {
			if err := emitter.writeIndent(); err != nil {
				return err
			}
			leadingSpaces = isBlank(value, i)
		}
		var err error
		if !breaks && isSpace(value, i) && !isSpace(value, i+1) && emitter.column > emitter.bestWidth {
			err = emitter.writeIndent()
			i += width(value[i])
		} else {
			err = emitter.write(value, &i)
		}
		if err != nil {
			return err
		}
		emitter.indention = false
		breaks = false
	}
	return nil
}
