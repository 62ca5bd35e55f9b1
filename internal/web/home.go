package web

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// Home renders the landing page: create/join forms, the live room list, and
// any flash message a redirect left behind.
func Home(flashMessage, playerName string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		flash, err := json.Marshal(flashMessage)
		if err != nil {
			return err
		}
		name, err := json.Marshal(playerName)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Emoji Songs</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Emoji Songs</span>
        <h1>Guess the song from the emoji.</h1>
        <p>Start a room and share the code, or join a friend's room.</p>
        <div id="flash" class="result"></div>
      </header>

      <section class="panel">
        <h2>Start a new game</h2>
        <form id="createForm" class="join-form">
          <input name="name" placeholder="Your name" autocomplete="name" required/>
          <button type="submit" class="primary">Create room</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Join a game</h2>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Room code" autocomplete="off" required/>
          <input name="name" placeholder="Your name" autocomplete="name" required/>
          <button type="submit" class="secondary">Join room</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Open rooms</h2>
        <ul id="roomList" class="room-list"></ul>
      </section>
    </main>

    <script>
      const flash = `+string(flash)+`;
      const savedName = `+string(name)+`;
      const createForm = document.getElementById("createForm");
      const createResult = document.getElementById("createResult");
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      const roomList = document.getElementById("roomList");

      if (flash) {
        document.getElementById("flash").textContent = flash;
      }
      if (savedName) {
        for (const input of document.querySelectorAll('input[name="name"]')) {
          input.value = savedName;
        }
      }

      function rememberPlayer(code, data) {
        sessionStorage.setItem("es:" + code, JSON.stringify({
          player_id: data.player_id,
          token: data.token,
        }));
      }

      createForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        createResult.textContent = "Creating room...";
        const name = new FormData(createForm).get("name");
        const res = await fetch("/api/rooms", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name }),
        });
        const data = await res.json();
        if (!res.ok) {
          createResult.textContent = data.error || "Failed to create room.";
          return;
        }
        rememberPlayer(data.room_code, data);
        window.location.href = "/room/" + data.room_code;
      });

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Joining...";
        const form = new FormData(joinForm);
        const code = (form.get("code") || "").toUpperCase().trim();
        const res = await fetch("/api/rooms/" + code + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name: form.get("name") }),
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "Failed to join room.";
          return;
        }
        rememberPlayer(code, data);
        window.location.href = "/room/" + code;
      });

      const proto = window.location.protocol === "https:" ? "wss" : "ws";
      const ws = new WebSocket(proto + "://" + window.location.host + "/ws/home");
      ws.onmessage = (event) => {
        const data = JSON.parse(event.data);
        roomList.innerHTML = "";
        (data.rooms || []).forEach((room) => {
          const item = document.createElement("li");
          item.textContent = room.code + " — " + room.status + " (" + room.players + " players)";
          roomList.appendChild(item);
        });
      };
    </script>
  </body>
</html>`)
		return err
	})
}
