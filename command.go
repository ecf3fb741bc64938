package main

import (
	"strings"

	"github.com/horgh/irc"
)

// handleMessage takes action based on a registered client's message.
func (c *Client) handleMessage(m irc.Message) {
	if m.Command == "NICK" || m.Command == "USER" {
		// Registration is final. No renames, no re-registration.
		c.logger().Debugf("Ignoring %s after registration", m.Command)
		return
	}

	if m.Command == "PING" {
		c.pingCommand(m)
		return
	}

	if m.Command == "PRIVMSG" {
		c.privmsgCommand(m)
		return
	}

	if m.Command == "JOIN" {
		c.joinCommand(m)
		return
	}

	if m.Command == "PART" {
		c.partCommand(m)
		return
	}

	if m.Command == "QUIT" {
		c.quitCommand(m)
		return
	}

	if m.Command == "PONG" {
		// Not doing anything with this. Just accept it.
		return
	}

	// 421 ERR_UNKNOWNCOMMAND
	c.messageFromServer("421", []string{m.Command, "Unknown command"})
}

// nickCommand handles NICK during login. After registration NICK never
// reaches here.
func (c *Client) nickCommand(m irc.Message) {
	// We should have one parameter: The nick they want.
	if len(m.Params) == 0 {
		// 431 ERR_NONICKNAMEGIVEN
		c.messageFromServer("431", []string{"No nickname given"})
		return
	}

	nick := m.Params[0]

	if !isValidNick(c.Server.Config.MaxNickLength, nick) {
		// 432 ERR_ERRONEUSNICKNAME
		c.messageFromServer("432", []string{nick, "Erroneous nickname"})
		return
	}

	// A taken nick gets the collision reply even if we already have one of
	// our own.
	if c.Server.clients.taken(nick) {
		c.logger().Infof("Nickname already taken: %s", nick)

		// 436 ERR_NICKCOLLISION
		c.messageFromServer("436", []string{nick, "Nickname collision KILL"})
		return
	}

	if c.nick != "" {
		// The nick is fixed once chosen.
		return
	}

	c.nick = nick
	c.logger().Debugf("Nickname set: %s", nick)
}

// userCommand handles USER during login.
func (c *Client) userCommand(m irc.Message) {
	// USER <user> <mode> <unused> :<real name>
	if len(m.Params) < 4 {
		// 461 ERR_NEEDMOREPARAMS
		c.messageFromServer("461", []string{"USER", "Not enough parameters"})
		return
	}

	if c.user != "" {
		// Already set. Subsequent USER commands are silently ignored.
		return
	}

	c.user = m.Params[3]
	c.logger().Debugf("Username set: %s", c.user)
}

func (c *Client) pingCommand(m irc.Message) {
	if len(m.Params) == 0 {
		// 409 ERR_NOORIGIN
		c.messageFromServer("409", []string{"No origin specified"})
		return
	}

	// Echo the token back. Goes to our own queue only.
	c.messageFromServer("PONG", []string{m.Params[0]})
}

func (c *Client) privmsgCommand(m irc.Message) {
	if len(m.Params) == 0 {
		// 411 ERR_NORECIPIENT
		c.messageFromServer("411", []string{"No recipient given (PRIVMSG)"})
		return
	}

	if len(m.Params) < 2 {
		// 412 ERR_NOTEXTTOSEND
		c.messageFromServer("412", []string{"No text to send"})
		return
	}

	target := m.Params[0]
	text := m.Params[1]

	// Targets starting with # name a channel; anything else is a nick.
	if strings.HasPrefix(target, "#") {
		// Membership is not required to send to a channel.
		recipients, exists := c.Server.channels.members(target, c.nick)
		if !exists {
			// 403 ERR_NOSUCHCHANNEL
			c.messageFromServer("403", []string{target, "No such channel"})
			return
		}

		// The sender never hears its own channel message.
		for _, q := range recipients {
			c.messageUser(q, "PRIVMSG", []string{target, text})
		}
		return
	}

	q, exists := c.Server.clients.lookup(target)
	if !exists {
		// 401 ERR_NOSUCHNICK
		c.messageFromServer("401", []string{target, "No such nick/channel"})
		return
	}

	c.messageUser(q, "PRIVMSG", []string{target, text})
}

func (c *Client) joinCommand(m irc.Message) {
	// NOTE: Difference from RFC 2812: only one channel at a time.
	if len(m.Params) == 0 {
		// 461 ERR_NEEDMOREPARAMS
		c.messageFromServer("461", []string{"JOIN", "Not enough parameters"})
		return
	}

	name := m.Params[0]

	if !isValidChannel(c.Server.Config.MaxChannelLength, name) {
		// 403 ERR_NOSUCHCHANNEL. Used to indicate channel name is invalid.
		c.messageFromServer("403", []string{name, "Invalid channel name"})
		return
	}

	members := c.Server.channels.join(name, c.nick, c.Queue)

	c.logger().Infof("User %s joined channel %s", c.nick, name)

	// Everyone currently in the channel hears about the join, the joiner
	// included. That echo is the client's cue that the join succeeded.
	for _, q := range members {
		c.messageUser(q, "JOIN", []string{name})
	}
}

func (c *Client) partCommand(m irc.Message) {
	if len(m.Params) == 0 {
		// 461 ERR_NEEDMOREPARAMS
		c.messageFromServer("461", []string{"PART", "Not enough parameters"})
		return
	}

	name := m.Params[0]

	remaining, wasMember := c.Server.channels.part(name, c.nick)
	if !wasMember {
		// Unknown channel, or we weren't in it. Nothing to say.
		c.logger().Debugf("PART %s: not a member", name)
		return
	}

	c.logger().Infof("User %s left channel %s", c.nick, name)

	params := []string{name}
	if len(m.Params) >= 2 {
		params = append(params, m.Params[1])
	}

	for _, q := range remaining {
		c.messageUser(q, "PART", params)
	}
}

func (c *Client) quitCommand(m irc.Message) {
	reason := "Client quit"
	if len(m.Params) > 0 {
		reason = m.Params[0]
	}

	c.quit(reason)
}
