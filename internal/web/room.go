package web

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// Room renders the lobby: the creator waits for a joiner, sees the pending
// name and admits it; the joiner waits for approval. Both navigate to the
// game once the room starts playing.
func Room(roomCode, playerName string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		code, err := json.Marshal(roomCode)
		if err != nil {
			return err
		}
		name, err := json.Marshal(playerName)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Emoji Songs — Lobby</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Lobby</span>
        <h1 id="roomCode"></h1>
        <p>Share this code or the link below with your opponent.</p>
      </header>

      <section class="panel">
        <div class="share-row">
          <button id="copyLink" class="secondary">Copy invite link</button>
          <img id="qr" alt="Join QR code" width="128" height="128"/>
        </div>
        <div id="copyResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Players</h2>
        <ul id="playerList" class="room-list"></ul>
        <div id="pendingPanel" hidden>
          <p><span id="pendingName"></span> wants to join.</p>
          <button id="admitBtn" class="primary">Let them in</button>
        </div>
        <div id="waitingPanel" hidden>
          <p>Waiting for the host to let you in…</p>
        </div>
        <div id="lobbyResult" class="result"></div>
      </section>
    </main>

    <script>
`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "      const roomCode = "+string(code)+";\n"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "      const playerName = "+string(name)+";\n"); err != nil {
			return err
		}
		_, err = io.WriteString(w, `
      const stored = JSON.parse(sessionStorage.getItem("es:" + roomCode) || "{}");
      document.getElementById("roomCode").textContent = roomCode;
      document.getElementById("qr").src = "/api/rooms/" + roomCode + "/qr";

      document.getElementById("copyLink").addEventListener("click", async () => {
        const link = window.location.origin + "/room/" + roomCode;
        try {
          await navigator.clipboard.writeText(link);
          document.getElementById("copyResult").textContent = "Link copied.";
        } catch (err) {
          document.getElementById("copyResult").textContent = link;
        }
      });

      document.getElementById("admitBtn").addEventListener("click", async () => {
        const res = await fetch("/api/rooms/" + roomCode + "/admit", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ player_id: stored.player_id, token: stored.token }),
        });
        if (!res.ok) {
          const data = await res.json();
          document.getElementById("lobbyResult").textContent = data.error || "Failed to admit player.";
        }
      });

      function render(snapshot) {
        const list = document.getElementById("playerList");
        list.innerHTML = "";
        (snapshot.players || []).forEach((player) => {
          const item = document.createElement("li");
          let label = player.name;
          if (player.is_creator) label += " (host)";
          if (!player.approved) label += " — pending";
          item.textContent = label;
          list.appendChild(item);
        });

        const amCreator = (snapshot.players || []).some(
          (p) => p.is_creator && p.id === stored.player_id
        );
        const pending = snapshot.pending_player || "";
        document.getElementById("pendingPanel").hidden = !(amCreator && pending);
        document.getElementById("pendingName").textContent = pending;
        document.getElementById("waitingPanel").hidden = amCreator || !pending;

        if (snapshot.status === "playing" || snapshot.status === "finished") {
          window.location.href = "/game/" + roomCode;
        }
      }

      const proto = window.location.protocol === "https:" ? "wss" : "ws";
      const role = stored.player_id ? "joiner" : "spectator";
      const ws = new WebSocket(
        proto + "://" + window.location.host + "/ws/rooms/" + roomCode + "?role=" + role
      );
      ws.onmessage = (event) => render(JSON.parse(event.data));
    </script>
  </body>
</html>`)
		return err
	})
}
