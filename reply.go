package main

import (
	"fmt"
	"strings"

	"github.com/horgh/irc"
)

// messageFromServer enqueues a message on the client's own queue. It
// appears to be from the server.
func (c *Client) messageFromServer(command string, params []string) {
	// For numeric messages, we need to prepend the nick.
	// Use * for the nick in cases where the client doesn't have one yet.
	if isNumericCommand(command) {
		nick := "*"
		if c.nick != "" {
			nick = c.nick
		}
		newParams := []string{nick}
		newParams = append(newParams, params...)
		params = newParams
	}

	c.enqueue(c.Queue, irc.Message{
		Prefix:  c.Server.Config.ServerName,
		Command: command,
		Params:  params,
	})
}

// messageUser enqueues a message on the given queue as coming from this
// client. The queue may belong to anyone, this client included.
func (c *Client) messageUser(q *queue, command string, params []string) {
	c.enqueue(q, irc.Message{
		Prefix:  c.nick,
		Command: command,
		Params:  params,
	})
}

// enqueue renders the message and puts it on the queue. A truncated
// message goes out as far as it fits; anything else unencodable is
// dropped.
func (c *Client) enqueue(q *queue, m irc.Message) {
	s, err := m.Encode()
	if err != nil && err != irc.ErrTruncated {
		c.logger().Errorf("Unable to encode message: %s: %s", m, err)
		return
	}

	q.send(s)
}

// motd sends the configured message of the day, if there is one.
func (c *Client) motd() {
	if c.Server.Config.MOTD == "" {
		return
	}

	// 375 RPL_MOTDSTART
	c.messageFromServer("375", []string{
		fmt.Sprintf("- %s Message of the day - ", c.Server.Config.ServerName),
	})

	// 372 RPL_MOTD
	for _, line := range strings.Split(c.Server.Config.MOTD, "\n") {
		c.messageFromServer("372", []string{fmt.Sprintf("- %s", line)})
	}

	// 376 RPL_ENDOFMOTD
	c.messageFromServer("376", []string{"End of /MOTD command"})
}
